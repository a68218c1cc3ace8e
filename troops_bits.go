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

// troopAttributeWords is the word width of a troop's packed attribute
// record: five one-byte attributes, forty bits total, fit in one word.
const troopAttributeWords = 1

// troopAttributeFields packs a troop's five core attributes one byte
// apiece: strength, agility, intelligence, charisma, and a reserved
// byte the original format always carries alongside them.
var troopAttributeFields = []BitField{
	{Name: "strength", Offset: 0, Width: 8},
	{Name: "agility", Offset: 8, Width: 8},
	{Name: "intelligence", Offset: 16, Width: 8},
	{Name: "charisma", Offset: 24, Width: 8},
	{Name: "reserved", Offset: 32, Width: 8},
}

// troopProficiencyWords is the word width of a troop's packed weapon
// proficiency record: seven 10-bit proficiencies run to bit 70, so the
// record (like item stats' thrust_damage) straddles a word boundary.
const troopProficiencyWords = 2

// troopProficiencyFields packs the seven weapon proficiency classes,
// ten bits apiece (0-1023, the proficiency point cap).
var troopProficiencyFields = []BitField{
	{Name: "one_handed", Offset: 0, Width: 10},
	{Name: "two_handed", Offset: 10, Width: 10},
	{Name: "polearm", Offset: 20, Width: 10},
	{Name: "archery", Offset: 30, Width: 10},
	{Name: "crossbow", Offset: 40, Width: 10},
	{Name: "throwing", Offset: 50, Width: 10},
	{Name: "firearm", Offset: 60, Width: 10},
}

// troopSkillWords is the word width of a troop's packed skill record:
// six skills at 32 bits apiece.
const troopSkillWords = 3

// troopSkillFields packs six skill slots. Warband ships more than six
// named skills; a troop record's skills object only ever needs to
// populate the ones it has points in; unlisted slots pack to zero.
var troopSkillFields = []BitField{
	{Name: "skill_0", Offset: 0, Width: 32},
	{Name: "skill_1", Offset: 32, Width: 32},
	{Name: "skill_2", Offset: 64, Width: 32},
	{Name: "skill_3", Offset: 96, Width: 32},
	{Name: "skill_4", Offset: 128, Width: 32},
	{Name: "skill_5", Offset: 160, Width: 32},
}

func packTroopAttributes(values map[string]uint64) []uint64 {
	return packBits(troopAttributeFields, troopAttributeWords, values)
}

func packTroopProficiencies(values map[string]uint64) []uint64 {
	return packBits(troopProficiencyFields, troopProficiencyWords, values)
}

func packTroopSkills(values map[string]uint64) []uint64 {
	return packBits(troopSkillFields, troopSkillWords, values)
}

// readStatFields reads every named bit field in fields out of a JSON
// object Value, defaulting anything absent to zero. Shared by the
// troop attribute/proficiency/skill objects and the item stats object.
func readStatFields(v Value, fields []BitField) map[string]uint64 {
	values := make(map[string]uint64, len(fields))
	for _, f := range fields {
		if fv, ok := v.Field(f.Name); ok {
			if n, ok := fv.Int(); ok {
				values[f.Name] = uint64(n)
			}
		}
	}
	return values
}
