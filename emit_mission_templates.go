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

// emitMissionTemplates writes mission_templates.txt: one record per
// mission template, a flags word followed by the rearmable trigger
// block that drives its scripted events, mirroring
// ModuleSystem.cpp's WriteMissionTemplates / WriteTriggerBlock.
func emitMissionTemplates(c *Compiler) error {
	records, err := loadOptionalEntities(c, "mission_templates", "mission_templates")
	if err != nil {
		return err
	}

	f, err := CreateOutputFile(c.outDir(), "mission_templates.txt")
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, len(records))
	for i, rec := range records {
		name, err := entityName(rec)
		if err != nil {
			return fmt.Errorf("mission_templates entity %d: %w", i, err)
		}
		fields, _ := rec.Seq()
		flags := fieldInt(fields, 1, 0)

		ctx := &OperandContext{
			Registry: c.Registry, Variables: c.Variables, Strings: c.Strings, Reporter: c.Reporter,
			Context: fmt.Sprintf("mission template %s", name),
		}
		var triggers []Trigger
		if len(fields) > 2 {
			trigSeq, _ := fields[2].Seq()
			for ti, tv := range trigSeq {
				pair, ok := tv.Seq()
				if !ok || len(pair) < 4 {
					return fmt.Errorf("mission template %s: trigger %d expected [check_interval, delay, rearm_interval, block]", name, ti)
				}
				checkInterval, _ := pair[0].Float()
				delay, _ := pair[1].Float()
				rearmInterval, _ := pair[2].Float()
				block, err := CompileBlock(pair[3], ctx, c.Opcodes)
				if err != nil {
					return fmt.Errorf("mission template %s: trigger %d: %w", name, ti, err)
				}
				triggers = append(triggers, Trigger{CheckInterval: checkInterval, Delay: delay, RearmInterval: rearmInterval, Block: block})
			}
		}

		var buf bytes.Buffer
		if err := WriteTriggerBlock(&buf, triggers); err != nil {
			return fmt.Errorf("mission template %s: %w", name, err)
		}
		fmt.Fprintf(f, "mt_%s %d %s", name, flags, buf.String())
	}
	return nil
}
