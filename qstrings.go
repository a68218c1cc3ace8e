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
	"sync"
)

// QuickStringPool deduplicates display strings that appear as literal
// text operands ("reg_str1 now holds \"You have won\"") into a single
// qstr_* identifier, the way ModuleSystem.cpp's ParseOperand does for
// any string literal operand. The same literal text always yields the
// same key; two different literals that happen to produce the same
// naive key are disambiguated by growing the key first, then by a
// numeric suffix, in that exact order, because output files compiled
// from unchanged modules must assign the same qstr_* names every time.
type QuickStringPool struct {
	mu       sync.Mutex
	byKey    map[string]string
	byValue  map[string]string
	refcount map[string]uint32
	order    []string
}

// NewQuickStringPool returns an empty pool.
func NewQuickStringPool() *QuickStringPool {
	return &QuickStringPool{
		byKey:    map[string]string{},
		byValue:  map[string]string{},
		refcount: map[string]uint32{},
	}
}

// minInt avoids pulling in a generic-math helper for one comparison.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// GetOrCreate returns the qstr_* key for value, creating one seeded
// from the readable text in seed if value hasn't been interned yet.
// Every call for the same value (regardless of seed) returns the same
// key and increments its reference count.
func (p *QuickStringPool) GetOrCreate(seed, value string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if key, ok := p.byValue[value]; ok {
		p.refcount[key]++
		return key
	}

	base := encodeID(seed)
	maxLen := len(base)
	start := minInt(20, maxLen)

	key := ""
	for l := start; l <= maxLen; l++ {
		candidate := "qstr_" + base[:l]
		if existing, exists := p.byKey[candidate]; !exists || existing == value {
			key = candidate
			break
		}
	}
	if key == "" {
		for n := 2; ; n++ {
			candidate := fmt.Sprintf("qstr_%s_%d", base, n)
			if existing, exists := p.byKey[candidate]; !exists || existing == value {
				key = candidate
				break
			}
		}
	}

	if _, exists := p.byKey[key]; !exists {
		p.byKey[key] = value
		p.order = append(p.order, key)
	}
	p.byValue[value] = key
	p.refcount[key]++
	return key
}

// Value returns the literal text stored under key.
func (p *QuickStringPool) Value(key string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.byKey[key]
	return v, ok
}

// Refcount returns how many operand sites reference key.
func (p *QuickStringPool) Refcount(key string) uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refcount[key]
}

// Keys returns every interned key in first-creation order, the order
// emitQuickStrings writes them in.
func (p *QuickStringPool) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}
