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
	"strings"
)

// emitScripts writes scripts.txt: a version header, an entity count,
// then one "<name> <failure_flag> <statement-block>" line per script,
// mirroring ModuleSystem.cpp's WriteScripts. A script record is either
// [name, body] (failure_flag defaults to -1) or
// [name, failure_flag, body].
func emitScripts(c *Compiler) error {
	v, err := c.Loader.Module("scripts", "scripts")
	if err != nil {
		return err
	}
	records, ok := v.Seq()
	if !ok {
		return fmt.Errorf("scripts.scripts is not a sequence")
	}

	f, err := CreateOutputFile(c.outDir(), "scripts.txt")
	if err != nil {
		return err
	}
	defer f.Close()

	var obfuscated [][2]string

	fmt.Fprintln(f, "scriptsfile version 1")
	fmt.Fprintln(f, len(records))

	for i, rec := range records {
		name, err := entityName(rec)
		if err != nil {
			return fmt.Errorf("scripts entity %d: %w", i, err)
		}
		fields, _ := rec.Seq()
		if len(fields) < 2 {
			return fmt.Errorf("script %s has no statement block", name)
		}

		failureFlag := int64(-1)
		bodyField := fields[1]
		if len(fields) >= 3 {
			failureFlag, _ = fields[1].Int()
			bodyField = fields[2]
		}

		ctx := &OperandContext{
			Registry:  c.Registry,
			Variables: c.Variables,
			Strings:   c.Strings,
			Reporter:  c.Reporter,
			Context:   fmt.Sprintf("script %s", name),
		}
		block, err := CompileBlock(bodyField, ctx, c.Opcodes)
		if err != nil {
			return fmt.Errorf("script %s: %w", name, err)
		}

		if !strings.HasPrefix(name, "cf_") {
			for _, stmt := range block.Statements {
				if c.Opcodes.IsCF(stmt.Opcode) {
					c.Reporter.Warnf("script_"+name, "script uses control-flow opcodes but its name lacks the cf_ prefix")
					break
				}
			}
		}

		writtenName := name
		if c.Options.HideScripts {
			writtenName = obfuscateIdentifier(name)
		}
		obfuscated = append(obfuscated, [2]string{name, writtenName})

		fmt.Fprintf(f, "script_%s %d %s\n", writtenName, failureFlag, EncodeBlock(block))
	}

	if c.Options.ListObfuscatedScripts && c.Options.HideScripts {
		of, err := CreateOutputFile(c.outDir(), "obfuscated_scripts.txt")
		if err != nil {
			return err
		}
		defer of.Close()
		fmt.Fprintln(of, len(obfuscated))
		for _, pair := range obfuscated {
			fmt.Fprintf(of, "script_%s script_%s\n", pair[0], pair[1])
		}
	}

	if c.Options.ListUnreferencedScripts {
		uf, err := CreateOutputFile(c.outDir(), "unreferenced_scripts.txt")
		if err != nil {
			return err
		}
		defer uf.Close()
		var unused []string
		for _, name := range c.Registry.Names("script") {
			if c.Registry.Usage("script", name) == 0 {
				unused = append(unused, "script_"+name)
			}
		}
		fmt.Fprintln(uf, len(unused))
		for _, name := range unused {
			fmt.Fprintln(uf, name)
		}
	}

	return nil
}
