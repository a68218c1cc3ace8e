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
)

func TestFactionMatrixIsReflexive(t *testing.T) {
	m := buildFactionMatrix(3, [][]facRelPair{{}, {}, {}})
	for i := 0; i < 3; i++ {
		assert.Equal(t, 1.0, m[i*3+i])
	}
}

func TestFactionMatrixIsSymmetric(t *testing.T) {
	// faction 0 declares a relation to faction 2 only; faction 2 never
	// declares the reverse.
	m := buildFactionMatrix(3, [][]facRelPair{{{Other: 2, Value: -1}}, {}, {}})

	assert.Equal(t, m[0*3+2], m[2*3+0])
	assert.Equal(t, -1.0, m[0*3+2])
}

func TestFactionMatrixOwnDeclarationOverridesMirror(t *testing.T) {
	// faction 0 -> 1 declared as 0.5; faction 1 -> 0 declared as -0.5.
	// Each faction's own declaration sets its own row's cell; faction
	// 0's value is not mirrored over faction 1's, and faction 1's value
	// is not mirrored back over the already-set cell (0, 1).
	m := buildFactionMatrix(2, [][]facRelPair{{{Other: 1, Value: 0.5}}, {{Other: 0, Value: -0.5}}})

	assert.Equal(t, 0.5, m[0*2+1])
	assert.Equal(t, -0.5, m[1*2+0])
}

func TestFactionMatrixZeroDeclarationIsStillOverridable(t *testing.T) {
	// A faction explicitly declaring a 0.0 relation is indistinguishable
	// from "never declared" under the epsilon rule; a later pair from
	// the other side still wins. This is the spec's own documented
	// limitation of the epsilon approach, not a bug in this
	// implementation.
	m := buildFactionMatrix(2, [][]facRelPair{{{Other: 1, Value: 0}}, {{Other: 0, Value: 0.75}}})
	assert.Equal(t, 0.75, m[0*2+1])
}
