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
	"math"
	"strings"
)

// relationEpsilon is how close to zero a matrix cell has to be before
// it's still considered "undeclared" and eligible to receive a mirrored
// value from the other faction's declaration. A faction that genuinely wants neutral (0.0) relations with
// another it never mentions gets that for free anyway, since the
// matrix starts zeroed.
const relationEpsilon = 1e-8

// facRelPair is one faction's declared relation to another: module
// authors declare a relation once, from either side, as a sparse
// (other_faction, value) pair rather than a dense per-index array.
type facRelPair struct {
	Other int
	Value float64
}

// buildFactionMatrix assembles the flat, row-major n*n relation matrix
// from each faction's own sparse relation list. A faction is always at
// relation 1.0 with itself (reflexivity); a relation declared in only
// one direction is mirrored into the other (symmetry). A pair declared
// by faction i always sets cell (i, other); it is mirrored into
// (other, i) only while that cell is still indistinguishable from
// "never set" (|existing| < epsilon), so a faction's own declaration
// overrides a value mirrored from the other side.
func buildFactionMatrix(n int, relations [][]facRelPair) []float64 {
	m := make([]float64, n*n)
	for i := 0; i < n; i++ {
		m[i*n+i] = 1.0
	}
	for i, pairs := range relations {
		for _, p := range pairs {
			if p.Other < 0 || p.Other >= n {
				continue
			}
			m[i*n+p.Other] = p.Value
			if idx := p.Other*n + i; math.Abs(m[idx]) < relationEpsilon {
				m[idx] = p.Value
			}
		}
	}
	return m
}

// emitFactions writes factions.txt: a version header, an entity count,
// then one "fac_name qstr_key color relation0 relation1 ..." line per
// faction, mirroring ModuleSystem.cpp's WriteFactions.
func emitFactions(c *Compiler) error {
	v, err := c.Loader.Module("factions", "factions")
	if err != nil {
		return err
	}
	records, ok := v.Seq()
	if !ok {
		return fmt.Errorf("factions.factions is not a sequence")
	}

	names := make([]string, len(records))
	displayNames := make([]string, len(records))
	colors := make([]int64, len(records))

	nameIndex := make(map[string]int, len(records))
	for i, rec := range records {
		name, err := entityName(rec)
		if err != nil {
			return fmt.Errorf("faction entity %d: %w", i, err)
		}
		names[i] = name
		nameIndex[name] = i
	}

	relations := make([][]facRelPair, len(records))
	for i, rec := range records {
		fields, _ := rec.Seq()
		if len(fields) < 4 {
			return fmt.Errorf("faction %s: expected [name, display_name, color, relations]", names[i])
		}
		displayNames[i], _ = fields[1].Str()
		colors[i], _ = fields[2].Int()

		relSeq, ok := fields[3].Seq()
		if !ok {
			return fmt.Errorf("faction %s: relations field is not a sequence", names[i])
		}
		pairs := make([]facRelPair, 0, len(relSeq))
		for j, rv := range relSeq {
			pair, ok := rv.Seq()
			if !ok || len(pair) < 2 {
				return fmt.Errorf("faction %s: relation %d is not an (other, value) pair", names[i], j)
			}
			var other int
			if s, ok := pair[0].Str(); ok {
				idx, ok := nameIndex[s]
				if !ok {
					return fmt.Errorf("faction %s: relation %d references unknown faction %q", names[i], j, s)
				}
				other = idx
			} else if n, ok := pair[0].Int(); ok {
				other = int(n)
			} else {
				return fmt.Errorf("faction %s: relation %d's other-faction field is neither a name nor an index", names[i], j)
			}
			value, _ := pair[1].Float()
			pairs = append(pairs, facRelPair{Other: other, Value: value})
		}
		relations[i] = pairs
	}

	matrix := buildFactionMatrix(len(records), relations)

	f, err := CreateOutputFile(c.outDir(), "factions.txt")
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, "factionsfile version 1")
	fmt.Fprintln(f, len(records))

	n := len(records)
	for i := range records {
		row := make([]string, n)
		for j := 0; j < n; j++ {
			row[j] = formatFloat(matrix[i*n+j])
		}
		qkey := c.Strings.GetOrCreate(names[i], displayNames[i])
		fmt.Fprintf(f, "fac_%s %s %d %s\n", names[i], qkey, colors[i], strings.Join(row, " "))
	}
	return nil
}
