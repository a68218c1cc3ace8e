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
	"sort"
)

// resourceKindOrder fixes the section order emitResourceUsage writes
// in, so -list-resources output is stable across runs regardless of
// map iteration order.
var resourceKindOrder = []ResourceKind{
	ResourceMesh, ResourceMaterial, ResourceSkeleton, ResourceBody, ResourceAnimation,
}

// emitResourceUsage writes resource_usage.txt under -list-resources: a
// section per resource namespace, each line a referenced asset name and
// how many times the compiled modules referenced it. A modder runs this
// to find assets a mod's data files expect that never shipped, or ones
// authored but never wired into any entity.
func emitResourceUsage(c *Compiler) error {
	f, err := CreateOutputFile(c.outDir(), "resource_usage.txt")
	if err != nil {
		return err
	}
	defer f.Close()

	for _, kind := range resourceKindOrder {
		names := c.Resources.Names(kind)
		sort.Strings(names)
		fmt.Fprintf(f, "%s %d\n", kind, len(names))
		for _, name := range names {
			fmt.Fprintf(f, "  %s %d\n", name, c.Resources.Count(kind, name))
		}
	}
	return nil
}
