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

// emitDialogStates writes dialog_states.txt: the named conversation
// input/output tokens a mod declares up front, separately from the
// dlga_ records that reference them by name. -hide-dialog-states
// obfuscates the declared name the same way -hide-scripts obfuscates
// script names, since both exist to keep authored conversation flow
// out of a shipped mod's plain-text output.
func emitDialogStates(c *Compiler) error {
	return emitEntityList(c, "dialog_states", "dialog_states", "dialog_states.txt", "", func(i int, name string, fields []Value) (string, error) {
		out := name
		if c.Options.HideDialogStates {
			out = obfuscateIdentifier(name)
		}
		return fmt.Sprintf("dlgs_%s", out), nil
	})
}
