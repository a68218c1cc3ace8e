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
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// CreateOutputFile opens name under dir for writing, creating dir if
// needed and truncating any existing content.
func CreateOutputFile(dir, name string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("create output file %s: %w", name, err)
	}
	return f, nil
}

// SimpleTrigger is a delay-only trigger block: after Delay game hours
// elapse it fires Block once.
type SimpleTrigger struct {
	Delay float64
	Block Block
}

// WriteSimpleTrigger writes one simple_trigger record, mirroring
// ModuleSystem.cpp's WriteSimpleTrigger.
func WriteSimpleTrigger(w io.Writer, t SimpleTrigger) error {
	_, err := fmt.Fprintf(w, "%s %s\n", formatFloat(t.Delay), EncodeBlock(t.Block))
	return err
}

// WriteSimpleTriggerBlock writes a leading count followed by every
// simple trigger in order, mirroring WriteSimpleTriggerBlock.
func WriteSimpleTriggerBlock(w io.Writer, triggers []SimpleTrigger) error {
	if _, err := fmt.Fprintf(w, "%d\n", len(triggers)); err != nil {
		return err
	}
	for _, t := range triggers {
		if err := WriteSimpleTrigger(w, t); err != nil {
			return err
		}
	}
	return nil
}

// Trigger is a rearmable trigger: CheckInterval seconds between
// evaluations, Delay before first evaluation, RearmInterval before a
// fired trigger can fire again.
type Trigger struct {
	CheckInterval float64
	Delay         float64
	RearmInterval float64
	Block         Block
}

// WriteTrigger writes one trigger record, mirroring WriteTrigger.
func WriteTrigger(w io.Writer, t Trigger) error {
	_, err := fmt.Fprintf(w, "%s %s %s %s\n",
		formatFloat(t.CheckInterval), formatFloat(t.Delay), formatFloat(t.RearmInterval), EncodeBlock(t.Block))
	return err
}

// WriteTriggerBlock writes a leading count followed by every trigger in
// order, mirroring WriteTriggerBlock.
func WriteTriggerBlock(w io.Writer, triggers []Trigger) error {
	if _, err := fmt.Fprintf(w, "%d\n", len(triggers)); err != nil {
		return err
	}
	for _, t := range triggers {
		if err := WriteTrigger(w, t); err != nil {
			return err
		}
	}
	return nil
}

// WriteStatementBlock writes a bare statement block (no trigger
// envelope) on its own line. No emitter in this package calls it: the
// dialog, script and trigger emitters embed EncodeBlock's output in
// their own record lines.
func WriteStatementBlock(w io.Writer, b Block) error {
	_, err := fmt.Fprintln(w, EncodeBlock(b))
	return err
}

// loadOptionalEntities reads moduleName.attr's entity list, the way
// loadHeaderOperations reads header_operations: a missing
// module_<name>.json compiles to an empty list instead of an error,
// since most of the long tail of entity kinds are genuinely optional
// in a given module.
func loadOptionalEntities(c *Compiler, moduleName, attr string) ([]Value, error) {
	v, err := c.Loader.Module(moduleName, attr)
	if err != nil {
		return nil, nil
	}
	entities, ok := v.Seq()
	if !ok {
		return nil, fmt.Errorf("module %s.%s is not a sequence", moduleName, attr)
	}
	return entities, nil
}

// emitEntityList implements the common shape most of the long tail of
// entity emitters share: open outFile, write an optional header line,
// write the entity count, then one line per entity produced by line.
// Declaring identifiers is still handled generically by
// Compiler.declareModule; this only covers pass 2's text output.
func emitEntityList(c *Compiler, moduleName, attr, outFile, header string, line func(i int, name string, fields []Value) (string, error)) error {
	entities, err := loadOptionalEntities(c, moduleName, attr)
	if err != nil {
		return err
	}

	f, err := CreateOutputFile(c.outDir(), outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if header != "" {
		fmt.Fprintln(f, header)
	}
	fmt.Fprintln(f, len(entities))
	for i, rec := range entities {
		name, err := entityName(rec)
		if err != nil {
			return fmt.Errorf("%s entity %d: %w", moduleName, i, err)
		}
		fields, _ := rec.Seq()
		l, err := line(i, name, fields)
		if err != nil {
			return fmt.Errorf("%s %s: %w", moduleName, name, err)
		}
		fmt.Fprintln(f, l)
	}
	return nil
}

// formatFloat renders a float the way the original compiler's fprintf
// of a double field does: an integral value prints with no fractional
// part, matching "%g"-style engine text files.
func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
