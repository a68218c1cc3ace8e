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
	"os"
	"path/filepath"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/require"
)

// writeFixtureModules populates dir with a minimal set of module_*.json
// files covering the five required (non-optional) module kinds.
func writeFixtureModules(t *testing.T, dir string) {
	t.Helper()
	writeModuleFile(t, dir, "module_scripts.json", `{
		"scripts": [
			["cf_test_script", [[1, 5], [2]]]
		]
	}`)
	writeModuleFile(t, dir, "module_troops.json", `{
		"troops": [
			["player", "Player", "player_faction", 1],
			["bandit", "Bandit", "outlaws", 3]
		]
	}`)
	writeModuleFile(t, dir, "module_items.json", `{
		"items": [
			["practice_sword", "Practice Sword", "practice_sword_mesh", 10, 1.5,
				{"body_armor": 0, "weapon_length": 30, "swing_damage": 12}]
		]
	}`)
	writeModuleFile(t, dir, "module_factions.json", `{
		"factions": [
			["player_faction", "Player's Faction", 255, [["outlaws", -1]]],
			["outlaws", "Outlaws", 200, []]
		]
	}`)
	writeModuleFile(t, dir, "module_dialogs.json", `{
		"dialogs": [
			["start", "start", [], "Hello traveler.", [], "close_window"]
		]
	}`)
}

func compileFixture(t *testing.T, inDir, outDir string) *Compiler {
	t.Helper()
	loader := NewJSONLoader(inDir)
	c := NewCompiler(loader, Options{InPath: inDir, OutPath: outDir})
	require.NoError(t, c.Compile())
	return c
}

func TestCompileProducesByteIdenticalOutputAcrossRuns(t *testing.T) {
	inDir := t.TempDir()
	writeFixtureModules(t, inDir)

	outA := t.TempDir()
	outB := t.TempDir()

	compileFixture(t, inDir, outA)
	compileFixture(t, inDir, outB)

	entries, err := os.ReadDir(outA)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	dmp := diffmatchpatch.New()
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		a, err := os.ReadFile(filepath.Join(outA, e.Name()))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(outB, e.Name()))
		require.NoError(t, err)

		diffs := dmp.DiffMain(string(a), string(b), false)
		if len(diffs) > 1 || (len(diffs) == 1 && diffs[0].Type != diffmatchpatch.DiffEqual) {
			t.Errorf("%s differs between two compiles of the same input:\n%s", e.Name(), dmp.DiffPrettyText(diffs))
		}
	}
}

func TestCompileWritesExpectedOutputFiles(t *testing.T) {
	inDir := t.TempDir()
	writeFixtureModules(t, inDir)
	outDir := t.TempDir()

	compileFixture(t, inDir, outDir)

	for _, name := range []string{
		"scripts.txt", "troops.txt", "item_kinds1.txt", "factions.txt",
		"conversation.txt", "quick_strings.txt", "variables.txt",
		"ids_troops.txt", "ids_items.txt",
	} {
		_, err := os.Stat(filepath.Join(outDir, name))
		require.NoErrorf(t, err, "expected output file %s", name)
	}
}

func TestCompileAssignsTroopIDsInDeclarationOrder(t *testing.T) {
	inDir := t.TempDir()
	writeFixtureModules(t, inDir)
	outDir := t.TempDir()

	c := compileFixture(t, inDir, outDir)
	idx, ok := c.Registry.IndexOf("trp", "player")
	require.True(t, ok)
	require.Equal(t, uint32(0), idx)

	idx, ok = c.Registry.IndexOf("trp", "bandit")
	require.True(t, ok)
	require.Equal(t, uint32(1), idx)
}
