// Copyright 2015 Google Inc. All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package modsys

import (
	"fmt"
	"hash/fnv"
)

// obfuscateIdentifier deterministically renames name for a shipped,
// "hidden" output file (-hide-scripts, -hide-global-vars,
// -hide-dialog-states): the same input always produces the same
// output within one compile, so the reference graph between a hidden
// script and whatever calls it still round-trips, but the authored
// name itself is no longer legible in the shipped data.
func obfuscateIdentifier(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return fmt.Sprintf("o%08x", h.Sum32())
}
