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

import "fmt"

// emitQuickStrings writes quick_strings.txt: every literal display
// string interned during pass 2, in first-creation order, as
// "qstr_key refcount text", mirroring ModuleSystem.cpp's
// WriteQuickStrings. It must run after every other emitter so the pool
// is complete.
func emitQuickStrings(c *Compiler) error {
	keys := c.Strings.Keys()

	f, err := CreateOutputFile(c.outDir(), "quick_strings.txt")
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, len(keys))
	for _, key := range keys {
		value, _ := c.Strings.Value(key)
		fmt.Fprintf(f, "%s %d %s\n", key, c.Strings.Refcount(key), encodeStrip(value))
	}
	return nil
}
