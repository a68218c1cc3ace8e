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
	"bytes"
	"fmt"
)

// emitPresentations writes presentations.txt: a flags word, the
// background mesh a presentation renders over, and the rearmable
// trigger block that drives its refresh/layout operations, mirroring
// ModuleSystem.cpp's WritePresentations.
func emitPresentations(c *Compiler) error {
	records, err := loadOptionalEntities(c, "presentations", "presentations")
	if err != nil {
		return err
	}

	f, err := CreateOutputFile(c.outDir(), "presentations.txt")
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, len(records))
	for i, rec := range records {
		name, err := entityName(rec)
		if err != nil {
			return fmt.Errorf("presentations entity %d: %w", i, err)
		}
		fields, _ := rec.Seq()
		flags := fieldInt(fields, 1, 0)
		mesh := fieldStr(fields, 2, "")
		if mesh != "" {
			c.Resources.Reference(ResourceMesh, mesh)
		}

		ctx := &OperandContext{
			Registry: c.Registry, Variables: c.Variables, Strings: c.Strings, Reporter: c.Reporter,
			Context: fmt.Sprintf("presentation %s", name),
		}
		var triggers []Trigger
		if len(fields) > 3 {
			trigSeq, _ := fields[3].Seq()
			for ti, tv := range trigSeq {
				pair, ok := tv.Seq()
				if !ok || len(pair) < 4 {
					return fmt.Errorf("presentation %s: trigger %d expected [check_interval, delay, rearm_interval, block]", name, ti)
				}
				checkInterval, _ := pair[0].Float()
				delay, _ := pair[1].Float()
				rearmInterval, _ := pair[2].Float()
				block, err := CompileBlock(pair[3], ctx, c.Opcodes)
				if err != nil {
					return fmt.Errorf("presentation %s: trigger %d: %w", name, ti, err)
				}
				triggers = append(triggers, Trigger{CheckInterval: checkInterval, Delay: delay, RearmInterval: rearmInterval, Block: block})
			}
		}

		var buf bytes.Buffer
		if err := WriteTriggerBlock(&buf, triggers); err != nil {
			return fmt.Errorf("presentation %s: %w", name, err)
		}
		fmt.Fprintf(f, "prsnt_%s %d %s %s", name, flags, encodeRes(mesh), buf.String())
	}
	return nil
}
