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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuickStringPoolDedupesIdenticalValues(t *testing.T) {
	p := NewQuickStringPool()

	k1 := p.GetOrCreate("You have won the tournament", "You have won the tournament")
	k2 := p.GetOrCreate("unrelated seed text", "You have won the tournament")

	assert.Equal(t, k1, k2, "identical literal text must share one key regardless of seed")
	assert.Equal(t, uint32(2), p.Refcount(k1))
}

func TestQuickStringPoolGrowsKeyOnCollisionBeforeFallingBackToSuffix(t *testing.T) {
	p := NewQuickStringPool()

	// Two different values that share the same first 20 characters:
	// the pool must grow the candidate key length to disambiguate
	// before ever trying a numeric suffix.
	seedA := "this_is_a_very_long_shared_prefix_alpha"
	seedB := "this_is_a_very_long_shared_prefix_beta"

	ka := p.GetOrCreate(seedA, "value A")
	kb := p.GetOrCreate(seedB, "value B")

	require.NotEqual(t, ka, kb)
	assert.NotContains(t, ka, "_2", "disambiguation should grow the key, not append a numeric suffix, while the keys still differ in content")
	assert.NotContains(t, kb, "_2")
}

func TestQuickStringPoolFallsBackToNumericSuffixOnExactCollision(t *testing.T) {
	p := NewQuickStringPool()

	ka := p.GetOrCreate("identical_seed_text", "first value")
	kb := p.GetOrCreate("identical_seed_text", "second value")

	require.NotEqual(t, ka, kb)
	assert.Contains(t, kb, "_2")
}

func TestQuickStringPoolKeysPreserveCreationOrder(t *testing.T) {
	p := NewQuickStringPool()
	p.GetOrCreate("first", "first")
	p.GetOrCreate("second", "second")
	p.GetOrCreate("third", "third")

	keys := p.Keys()
	require.Len(t, keys, 3)
	v0, _ := p.Value(keys[0])
	v1, _ := p.Value(keys[1])
	v2, _ := p.Value(keys[2])
	assert.Equal(t, []string{"first", "second", "third"}, []string{v0, v1, v2})
}
