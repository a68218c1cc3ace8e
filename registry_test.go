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

func TestRegistryDeclareAssignsStableIndices(t *testing.T) {
	reg := NewRegistry(NewReporter(false, true))

	a := reg.Declare("trp", "player")
	b := reg.Declare("trp", "bandit")
	c := reg.Declare("trp", "villager")

	assert.Equal(t, uint32(0), a)
	assert.Equal(t, uint32(1), b)
	assert.Equal(t, uint32(2), c)
	assert.Equal(t, []string{"player", "bandit", "villager"}, reg.Names("trp"))
}

func TestRegistryDeclareIsCaseInsensitive(t *testing.T) {
	reg := NewRegistry(NewReporter(false, true))

	a := reg.Declare("trp", "Player")
	b := reg.Declare("trp", "player")

	assert.Equal(t, a, b, "duplicate declaration (case-insensitive) should keep the first index")
	assert.Equal(t, 1, reg.Len("trp"))
}

func TestRegistryCategoriesAreIndependent(t *testing.T) {
	reg := NewRegistry(NewReporter(false, true))

	trp := reg.Declare("trp", "player")
	itm := reg.Declare("itm", "player")

	assert.Equal(t, uint32(0), trp)
	assert.Equal(t, uint32(0), itm, "same name in a different category gets its own index space")
}

func TestRegistryResolveAutoRegistersForwardReferences(t *testing.T) {
	reg := NewRegistry(NewReporter(false, true))

	idx := reg.Resolve("trp", "not_declared_yet")
	require.Equal(t, uint32(0), idx)
	assert.Equal(t, uint32(1), reg.Usage("trp", "not_declared_yet"))

	idx2 := reg.Resolve("trp", "NOT_DECLARED_YET")
	assert.Equal(t, idx, idx2)
	assert.Equal(t, uint32(2), reg.Usage("trp", "not_declared_yet"))
}

func TestRegistryIndexOf(t *testing.T) {
	reg := NewRegistry(NewReporter(false, true))
	reg.Declare("fac", "kingdom_1")

	idx, ok := reg.IndexOf("fac", "KINGDOM_1")
	require.True(t, ok)
	assert.Equal(t, uint32(0), idx)

	_, ok = reg.IndexOf("fac", "kingdom_2")
	assert.False(t, ok)
}
