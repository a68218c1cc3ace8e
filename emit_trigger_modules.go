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

// emitSimpleTriggersModule writes simple_triggers.txt: the module-level
// delay-only triggers declared outside of any entity (global game
// events like periodic AI updates), mirroring ModuleSystem.cpp's
// WriteSimpleTriggerBlock over module_simple_triggers.simple_triggers.
// Unlike every other module this one declares no identifiers of its
// own, so it's read directly in pass 2 rather than through declareModule.
func emitSimpleTriggersModule(c *Compiler) error {
	records, err := loadOptionalEntities(c, "simple_triggers", "simple_triggers")
	if err != nil {
		return err
	}

	ctx := &OperandContext{
		Registry: c.Registry, Variables: c.Variables, Strings: c.Strings, Reporter: c.Reporter,
		Context: "simple_triggers",
	}
	triggers := make([]SimpleTrigger, 0, len(records))
	for i, rec := range records {
		pair, ok := rec.Seq()
		if !ok || len(pair) < 2 {
			return fmt.Errorf("simple_triggers entry %d expected [delay, block]", i)
		}
		delay, _ := pair[0].Float()
		block, err := CompileBlock(pair[1], ctx, c.Opcodes)
		if err != nil {
			return fmt.Errorf("simple_triggers entry %d: %w", i, err)
		}
		triggers = append(triggers, SimpleTrigger{Delay: delay, Block: block})
	}

	f, err := CreateOutputFile(c.outDir(), "simple_triggers.txt")
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteSimpleTriggerBlock(f, triggers)
}

// emitTriggersModule writes triggers.txt: the module-level rearmable
// triggers declared outside of any entity, mirroring
// ModuleSystem.cpp's WriteTriggerBlock over module_triggers.triggers.
func emitTriggersModule(c *Compiler) error {
	records, err := loadOptionalEntities(c, "triggers", "triggers")
	if err != nil {
		return err
	}

	ctx := &OperandContext{
		Registry: c.Registry, Variables: c.Variables, Strings: c.Strings, Reporter: c.Reporter,
		Context: "triggers",
	}
	triggers := make([]Trigger, 0, len(records))
	for i, rec := range records {
		fields, ok := rec.Seq()
		if !ok || len(fields) < 4 {
			return fmt.Errorf("triggers entry %d expected [check_interval, delay, rearm_interval, block]", i)
		}
		checkInterval, _ := fields[0].Float()
		delay, _ := fields[1].Float()
		rearmInterval, _ := fields[2].Float()
		block, err := CompileBlock(fields[3], ctx, c.Opcodes)
		if err != nil {
			return fmt.Errorf("triggers entry %d: %w", i, err)
		}
		triggers = append(triggers, Trigger{CheckInterval: checkInterval, Delay: delay, RearmInterval: rearmInterval, Block: block})
	}

	f, err := CreateOutputFile(c.outDir(), "triggers.txt")
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteTriggerBlock(f, triggers)
}
