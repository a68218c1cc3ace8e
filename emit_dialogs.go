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

// emitDialogs writes conversation.txt: a record count, then one line per
// dialog record,
// "dlga_<name> <input_token> <condition-block> <quick-string text-id> <consequence-block> <output_token>",
// mirroring ModuleSystem.cpp's WriteDialogs. dialog_states.txt is
// written separately by emitDialogStates.
func emitDialogs(c *Compiler) error {
	v, err := c.Loader.Module("dialogs", "dialogs")
	if err != nil {
		return err
	}
	records, ok := v.Seq()
	if !ok {
		return fmt.Errorf("dialogs.dialogs is not a sequence")
	}

	f, err := CreateOutputFile(c.outDir(), "conversation.txt")
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, len(records))

	for i, rec := range records {
		name, err := entityName(rec)
		if err != nil {
			return fmt.Errorf("dialog entity %d: %w", i, err)
		}
		fields, _ := rec.Seq()
		if len(fields) < 5 {
			return fmt.Errorf("dialog %s: expected [name, input_token, conditions, text, consequences, output_token]", name)
		}
		inputToken, _ := fields[1].Str()
		text, _ := fields[3].Str()
		outputToken := "close_window"
		if len(fields) > 5 {
			outputToken, _ = fields[5].Str()
		}

		ctx := &OperandContext{
			Registry:  c.Registry,
			Variables: c.Variables,
			Strings:   c.Strings,
			Reporter:  c.Reporter,
			Context:   fmt.Sprintf("dialog %s", name),
		}
		conditions, err := CompileBlock(fields[2], ctx, c.Opcodes)
		if err != nil {
			return fmt.Errorf("dialog %s conditions: %w", name, err)
		}
		consequences, err := CompileBlock(fields[4], ctx, c.Opcodes)
		if err != nil {
			return fmt.Errorf("dialog %s consequences: %w", name, err)
		}

		qkey := c.Strings.GetOrCreate(name, text)
		fmt.Fprintf(f, "dlga_%s %s %s %s %s %s\n",
			name, inputToken, EncodeBlock(conditions), qkey, EncodeBlock(consequences), outputToken)
	}
	return nil
}
