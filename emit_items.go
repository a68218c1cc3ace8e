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

// maxItemMeshes and maxItemFactions bound an item's mesh-variation and
// faction lists, mirroring the original compiler's fixed-size mesh and
// faction arrays per item kind: a list longer than this is truncated
// with a warning rather than rejected outright.
const (
	maxItemMeshes   = 16
	maxItemFactions = 16
)

// itemMeshVariation is one of an item's mesh variations: a mesh,
// optionally paired with a material override.
type itemMeshVariation struct {
	Mesh     string
	Material string
}

func parseItemMeshes(v Value) []itemMeshVariation {
	// A bare string is a single unvaried mesh; a sequence is the full
	// variation list, each element either a mesh name or a
	// [mesh, material] pair.
	if s, ok := v.Str(); ok {
		return []itemMeshVariation{{Mesh: s}}
	}
	seq, ok := v.Seq()
	if !ok {
		return nil
	}
	out := make([]itemMeshVariation, 0, len(seq))
	for _, e := range seq {
		if s, ok := e.Str(); ok {
			out = append(out, itemMeshVariation{Mesh: s})
			continue
		}
		pair, ok := e.Seq()
		if !ok || len(pair) == 0 {
			continue
		}
		mv := itemMeshVariation{}
		mv.Mesh, _ = pair[0].Str()
		if len(pair) > 1 {
			mv.Material, _ = pair[1].Str()
		}
		out = append(out, mv)
	}
	return out
}

// rebalanceDifficulty recomputes an item's difficulty field from its
// damage and weight when -rusmod_rebalanser is set, the worked example
// from the header's rebalancing mod: raw authored difficulty values
// are frequently stale after a weapon's damage is retuned, so the
// rebalancer derives it instead of trusting the authored field.
func rebalanceDifficulty(weight float64, stats map[string]uint64) uint64 {
	dmg := stats["swing_damage"] + stats["thrust_damage"]
	derived := uint64(weight*3) + dmg/4
	return derived & bitMask(8)
}

// emitItems writes itemsfile version 3: a version header, an entity
// count, then one item record per item, mirroring
// ModuleSystem.cpp's WriteItems.
func emitItems(c *Compiler) error {
	v, err := c.Loader.Module("items", "items")
	if err != nil {
		return err
	}
	records, ok := v.Seq()
	if !ok {
		return fmt.Errorf("items.items is not a sequence")
	}

	f, err := CreateOutputFile(c.outDir(), "item_kinds1.txt")
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, "itemsfile version 3")
	fmt.Fprintln(f, len(records))

	for i, rec := range records {
		name, err := entityName(rec)
		if err != nil {
			return fmt.Errorf("item entity %d: %w", i, err)
		}
		fields, _ := rec.Seq()
		if len(fields) < 5 {
			return fmt.Errorf("item %s: expected [name, display_name, mesh(es), value, weight, ...]", name)
		}
		displayName, _ := fields[1].Str()
		meshes := parseItemMeshes(fields[2])
		if len(meshes) > maxItemMeshes {
			c.Reporter.Warnf("itm_"+name, "item declares %d mesh variations, truncating to %d", len(meshes), maxItemMeshes)
			meshes = meshes[:maxItemMeshes]
		}
		value, _ := fields[3].Int()
		weightF, _ := fields[4].Float()

		for _, mv := range meshes {
			c.Resources.Reference(ResourceMesh, mv.Mesh)
			if mv.Material != "" {
				c.Resources.Reference(ResourceMaterial, mv.Material)
			}
		}

		stats := map[string]uint64{}
		if len(fields) > 5 {
			stats = readStatFields(fields[5], itemStatFields)
		}
		if c.Options.RusmodRebalancer {
			stats["difficulty"] = rebalanceDifficulty(weightF, stats)
		}
		packed := packItemStats(stats)

		var factions []string
		if len(fields) > 6 {
			if facSeq, ok := fields[6].Seq(); ok {
				if len(facSeq) > maxItemFactions {
					c.Reporter.Warnf("itm_"+name, "item declares %d factions, truncating to %d", len(facSeq), maxItemFactions)
					facSeq = facSeq[:maxItemFactions]
				}
				for _, fv := range facSeq {
					if fn, ok := fv.Str(); ok {
						c.Registry.Resolve("fac", fn)
						factions = append(factions, "fac_"+fn)
					}
				}
			}
		}

		var triggerBlocks []string
		if len(fields) > 7 {
			if trigSeq, ok := fields[7].Seq(); ok {
				ctx := &OperandContext{
					Registry: c.Registry, Variables: c.Variables, Strings: c.Strings, Reporter: c.Reporter,
					Context: fmt.Sprintf("item %s simple trigger", name),
				}
				for ti, tv := range trigSeq {
					pair, ok := tv.Seq()
					if !ok || len(pair) < 2 {
						return fmt.Errorf("item %s: simple trigger %d malformed", name, ti)
					}
					delay, _ := pair[0].Float()
					block, err := CompileBlock(pair[1], ctx, c.Opcodes)
					if err != nil {
						return fmt.Errorf("item %s: simple trigger %d: %w", name, ti, err)
					}
					triggerBlocks = append(triggerBlocks, fmt.Sprintf("%s %s", formatFloat(delay), EncodeBlock(block)))
				}
			}
		}

		qkey := c.Strings.GetOrCreate(name, displayName)
		meshTokens := make([]string, len(meshes))
		for mi, mv := range meshes {
			if mv.Material != "" {
				meshTokens[mi] = fmt.Sprintf("%s %s", encodeRes(mv.Mesh), encodeRes(mv.Material))
			} else {
				meshTokens[mi] = encodeRes(mv.Mesh)
			}
		}

		line := fmt.Sprintf("itm_%s %s %d %s %d %s %d %d",
			name, qkey, len(meshes), strings.Join(meshTokens, " "), value, formatFloat(weightF),
			packed[0], packed[1])
		if len(factions) > 0 {
			line += fmt.Sprintf(" %d %s", len(factions), strings.Join(factions, " "))
		} else {
			line += " 0"
		}
		if len(triggerBlocks) > 0 {
			line += fmt.Sprintf(" %d %s", len(triggerBlocks), strings.Join(triggerBlocks, " "))
		} else {
			line += " 0"
		}
		fmt.Fprintln(f, line)
	}
	return nil
}
