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

// troopInventorySlots is the fixed inventory size every troop record
// carries, padded out with empty "-1 0" slots, mirroring
// ModuleSystem.cpp's fixed-size troop equipment array.
const troopInventorySlots = 64

// emitTroops writes troops.txt: a version header, an entity count,
// then one troop record per troop, mirroring ModuleSystem.cpp's
// WriteTroops.
func emitTroops(c *Compiler) error {
	v, err := c.Loader.Module("troops", "troops")
	if err != nil {
		return err
	}
	records, ok := v.Seq()
	if !ok {
		return fmt.Errorf("troops.troops is not a sequence")
	}

	f, err := CreateOutputFile(c.outDir(), "troops.txt")
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, "troopsfile version 2")
	fmt.Fprintln(f, len(records))

	for i, rec := range records {
		name, err := entityName(rec)
		if err != nil {
			return fmt.Errorf("troop entity %d: %w", i, err)
		}
		fields, _ := rec.Seq()
		if len(fields) < 3 {
			return fmt.Errorf("troop %s: expected [name, display_name, faction, level, ...]", name)
		}
		displayName, _ := fields[1].Str()
		faction, _ := fields[2].Str()
		level := int64(1)
		if len(fields) > 3 {
			level, _ = fields[3].Int()
		}
		c.Registry.Resolve("fac", faction)

		attrs := map[string]uint64{}
		if len(fields) > 4 {
			attrs = readStatFields(fields[4], troopAttributeFields)
		}
		profs := map[string]uint64{}
		if len(fields) > 5 {
			profs = readStatFields(fields[5], troopProficiencyFields)
		}
		skills := map[string]uint64{}
		if len(fields) > 6 {
			skills = readStatFields(fields[6], troopSkillFields)
		}

		var faceMesh, skeleton, body, animation string
		if len(fields) > 7 {
			if fm, ok := fields[7].Field("face_mesh"); ok {
				faceMesh, _ = fm.Str()
			}
			if sk, ok := fields[7].Field("skeleton"); ok {
				skeleton, _ = sk.Str()
			}
			if bd, ok := fields[7].Field("body"); ok {
				body, _ = bd.Str()
			}
			if an, ok := fields[7].Field("animation"); ok {
				animation, _ = an.Str()
			}
		}
		c.Resources.Reference(ResourceMesh, faceMesh)
		c.Resources.Reference(ResourceSkeleton, skeleton)
		c.Resources.Reference(ResourceBody, body)
		c.Resources.Reference(ResourceAnimation, animation)

		inventory := make([]string, troopInventorySlots)
		for s := 0; s < troopInventorySlots; s++ {
			inventory[s] = "-1 0"
		}
		if len(fields) > 8 {
			if invSeq, ok := fields[8].Seq(); ok {
				for s, item := range invSeq {
					if s >= troopInventorySlots {
						c.Reporter.Warnf("trp_"+name, "inventory has more than %d slots, truncating", troopInventorySlots)
						break
					}
					pair, ok := item.Seq()
					if !ok || len(pair) == 0 {
						continue
					}
					itemName, _ := pair[0].Str()
					itemIdx := c.Registry.Resolve("itm", itemName)
					modifier := int64(0)
					if len(pair) > 1 {
						modifier, _ = pair[1].Int()
					}
					inventory[s] = fmt.Sprintf("%d %d", itemIdx, modifier)
				}
			}
		}

		var faceKey1, faceKey2 int64
		if len(fields) > 9 {
			faceKey1, _ = fields[9].Int()
		}
		if len(fields) > 10 {
			faceKey2, _ = fields[10].Int()
		}

		attrWords := packTroopAttributes(attrs)
		profWords := packTroopProficiencies(profs)
		skillWords := packTroopSkills(skills)

		qkey := c.Strings.GetOrCreate(name, displayName)
		fmt.Fprintf(f, "trp_%s %s fac_%s %d %d %d %d %d %d %d %d %s %s %d %d\n",
			name, qkey, faction, level,
			attrWords[0],
			profWords[0], profWords[1],
			skillWords[0], skillWords[1], skillWords[2],
			encodeRes(faceMesh),
			strings.Join(inventory, " "),
			faceKey1, faceKey2)
	}
	return nil
}
