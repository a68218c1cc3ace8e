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

// itemStatWords is how many 64-bit words an item's packed stats record
// occupies. The thirteen fields run out to bit 117, past a single
// word's bit 63 (thrust_damage itself straddles the boundary, bits
// 60-69), so the record is two words wide, not one.
const itemStatWords = 2

// itemStatFields lays out an item's packed stats record exactly as
// ModuleSystem.cpp's item stats packing does. emit_items.go and its
// tests both rely on this exact layout for the pack/unpack round trip.
var itemStatFields = []BitField{
	{Name: "head_armor", Offset: 0, Width: 8},
	{Name: "body_armor", Offset: 8, Width: 8},
	{Name: "leg_armor", Offset: 16, Width: 8},
	{Name: "weight_quarter", Offset: 24, Width: 8},
	{Name: "difficulty", Offset: 32, Width: 8},
	{Name: "hit_points", Offset: 40, Width: 16},
	{Name: "swing_damage", Offset: 50, Width: 10},
	{Name: "thrust_damage", Offset: 60, Width: 10},
	{Name: "weapon_length", Offset: 70, Width: 10},
	{Name: "speed_rating", Offset: 80, Width: 10},
	{Name: "missile_speed", Offset: 90, Width: 10},
	{Name: "max_ammo", Offset: 100, Width: 8},
	{Name: "abundance", Offset: 110, Width: 8},
}

// packItemStats combines each named field's value into the item's
// two-word packed stats record. A value wider than its field is
// truncated to the field's low bits, matching the original compiler's
// unchecked bit-OR packing.
func packItemStats(values map[string]uint64) []uint64 {
	return packBits(itemStatFields, itemStatWords, values)
}

// unpackItemStats splits a packed stats record back into its named
// fields.
func unpackItemStats(words []uint64) map[string]uint64 {
	return unpackBits(itemStatFields, words)
}
