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
	"strconv"
	"strings"
	"sync"
)

// ResourceKind distinguishes the independent reference-counted resource
// namespaces: a mesh and a material can share a name without colliding.
type ResourceKind string

const (
	ResourceMesh      ResourceKind = "mesh"
	ResourceMaterial  ResourceKind = "material"
	ResourceSkeleton  ResourceKind = "skeleton"
	ResourceBody      ResourceKind = "body"
	ResourceAnimation ResourceKind = "animation"
)

// ResourceTracker counts how many times each externally authored asset
// name (a mesh, material, skeleton, physics body, or animation) is
// referenced across every compiled module, for the unused-resource
// diagnostic pass GetResource feeds in the original compiler. Names
// "0" and "none", and anything that parses as a plain number (a
// resource slot left at its numeric default), are never counted: they
// aren't asset references.
type ResourceTracker struct {
	mu     sync.Mutex
	counts map[ResourceKind]map[string]uint32
}

// NewResourceTracker returns an empty tracker.
func NewResourceTracker() *ResourceTracker {
	return &ResourceTracker{counts: map[ResourceKind]map[string]uint32{}}
}

func isResourcePlaceholder(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" || lower == "0" || lower == "none" {
		return true
	}
	if _, err := strconv.ParseFloat(lower, 64); err == nil {
		return true
	}
	return false
}

// Reference records one use of name under kind, unless name is a
// placeholder value. Names are matched case-insensitively, since the
// engine's own asset lookup is case-insensitive.
func (t *ResourceTracker) Reference(kind ResourceKind, name string) {
	if isResourcePlaceholder(name) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	key := strings.ToLower(name)
	m, ok := t.counts[kind]
	if !ok {
		m = map[string]uint32{}
		t.counts[kind] = m
	}
	m[key]++
}

// Count returns how many times name has been referenced under kind.
func (t *ResourceTracker) Count(kind ResourceKind, name string) uint32 {
	if isResourcePlaceholder(name) {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[kind][strings.ToLower(name)]
}

// Names returns every distinct name referenced under kind.
func (t *ResourceTracker) Names(kind ResourceKind) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	m := t.counts[kind]
	out := make([]string, 0, len(m))
	for name := range m {
		out = append(out, name)
	}
	return out
}
