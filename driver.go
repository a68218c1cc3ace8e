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
	"os"
	"path/filepath"
)

// Flag bits mirror ModuleSystem.h's msf_* module flags. No code in this
// package sets Compiler.Flags or reads module_info; -hide-global-vars
// is driven by Options.HideGlobalVars instead.
type Flag uint32

const (
	FlagObfuscateGlobalVars Flag = 1 << iota
	FlagExportIDs
)

// Has reports whether bit is set in f.
func (f Flag) Has(bit Flag) bool { return f&bit != 0 }

// Options configures a single compiler run, corresponding to cMS.cpp's
// command line flags (see options.go for the cobra surface that
// produces one of these).
type Options struct {
	InPath     string
	OutPath    string
	Strict     bool
	NoWarnings bool

	// SkipIDFiles disables writing the ids_<module>.txt export files.
	SkipIDFiles bool
	// ListResources writes resource_usage.txt, a reference count per
	// mesh/material/skeleton/body/animation name seen across every
	// module.
	ListResources bool
	// HideGlobalVars obfuscates global variable names in variables.txt.
	HideGlobalVars bool
	// HideScripts obfuscates script identifiers in scripts.txt.
	HideScripts bool
	// ListObfuscatedScripts writes obfuscated_scripts.txt, mapping real
	// script names to their obfuscated form. Only meaningful alongside
	// HideScripts.
	ListObfuscatedScripts bool
	// HideDialogStates obfuscates dialog state identifiers in
	// dialog_states.txt.
	HideDialogStates bool
	// HideTags suppresses the per-category tag byte normally OR'd into
	// the numeric values written to the ids_<module>.txt export files.
	HideTags bool
	// CompileData writes every output file under a Data/ subdirectory
	// of OutPath instead of directly into it.
	CompileData bool
	// ListUnreferencedScripts writes unreferenced_scripts.txt, every
	// declared script never referenced by any compiled statement.
	ListUnreferencedScripts bool
	// RusmodRebalancer recomputes each item's difficulty field from its
	// weight and damage instead of trusting the authored value, the
	// worked rebalancing-mod example from the header.
	RusmodRebalancer bool
}

// EmitFunc compiles and writes one module kind's output file(s). It is
// called once, after every module has had its identifiers declared
// (pass 1) and the Loader has been reset for pass 2.
type EmitFunc func(c *Compiler) error

// moduleSpec describes one declarative module this compiler knows how
// to load: which JSON attribute holds its entity list, which
// identifier category its entities' names belong to, and how to pull
// the identifier out of one entity record (almost always field 0).
type moduleSpec struct {
	Module string // e.g. "troops" — the file is module_troops.json
	Attr   string // e.g. "troops" — the attribute inside that file
	Prefix string // identifier category, e.g. "trp"; empty means the
	// module is an unnamed record list (triggers, simple_triggers) that
	// declares no identifiers at all.
	Emit EmitFunc
	// Optional modules whose module_<name>.json simply doesn't exist
	// compile to an empty list rather than failing the run; every
	// module beyond the five the header itself authors is optional.
	Optional bool
	// Tag is this category's operand tag byte (pre-shifted into bit
	// 56), assigned in registerTags.
	Tag int64
}

// reservedOperandTags are the tag bytes (already shifted) the four
// fixed single-purpose tags occupy; registerTags skips over these when
// handing out per-module tags so a plain entity reference can never be
// mistaken for a register, variable, or quick string operand.
var reservedOperandTags = map[int64]bool{
	OperandTagRegister:    true,
	OperandTagGlobalVar:   true,
	OperandTagLocalVar:    true,
	OperandTagQuickString: true,
}

// moduleRegistry lists every module this compiler loads, in the exact
// order ModuleSystem::DoCompile registers them in, since the order
// entities are declared in determines their assigned IDs. The first
// five modules (scripts through dialogs) are the header's own base game
// modules; everything after follows the same declare/emit shape the
// header documents for the rest of its entity kinds.
var moduleRegistry = []moduleSpec{
	{Module: "scripts", Attr: "scripts", Prefix: "script", Emit: emitScripts},
	{Module: "troops", Attr: "troops", Prefix: "trp", Emit: emitTroops},
	{Module: "items", Attr: "items", Prefix: "itm", Emit: emitItems},
	{Module: "factions", Attr: "factions", Prefix: "fac", Emit: emitFactions},
	{Module: "dialogs", Attr: "dialogs", Prefix: "dlga", Emit: emitDialogs},
	{Module: "dialog_states", Attr: "dialog_states", Prefix: "dlgs", Optional: true, Emit: emitDialogStates},
	{Module: "animations", Attr: "animations", Prefix: "anim", Optional: true, Emit: emitAnimations},
	{Module: "flora_kinds", Attr: "flora_kinds", Prefix: "flora", Optional: true, Emit: emitFloraKinds},
	{Module: "ground_specs", Attr: "ground_specs", Prefix: "ground", Optional: true, Emit: emitGroundSpecs},
	{Module: "info_pages", Attr: "info_pages", Prefix: "ip", Optional: true, Emit: emitInfoPages},
	{Module: "map_icons", Attr: "map_icons", Prefix: "icon", Optional: true, Emit: emitMapIcons},
	{Module: "menus", Attr: "menus", Prefix: "mnu", Optional: true, Emit: emitMenus},
	{Module: "meshes", Attr: "meshes", Prefix: "mesh", Optional: true, Emit: emitMeshes},
	{Module: "mission_templates", Attr: "mission_templates", Prefix: "mt", Optional: true, Emit: emitMissionTemplates},
	{Module: "music", Attr: "tracks", Prefix: "track", Optional: true, Emit: emitMusic},
	{Module: "particle_systems", Attr: "particle_systems", Prefix: "psys", Optional: true, Emit: emitParticleSystems},
	{Module: "parties", Attr: "parties", Prefix: "p", Optional: true, Emit: emitParties},
	{Module: "party_templates", Attr: "party_templates", Prefix: "pt", Optional: true, Emit: emitPartyTemplates},
	{Module: "postfx", Attr: "post_effects", Prefix: "pfx", Optional: true, Emit: emitPostEffects},
	{Module: "presentations", Attr: "presentations", Prefix: "prsnt", Optional: true, Emit: emitPresentations},
	{Module: "quests", Attr: "quests", Prefix: "qst", Optional: true, Emit: emitQuests},
	{Module: "scene_props", Attr: "scene_props", Prefix: "spr", Optional: true, Emit: emitSceneProps},
	{Module: "scenes", Attr: "scenes", Prefix: "scn", Optional: true, Emit: emitScenes},
	{Module: "simple_triggers", Attr: "simple_triggers", Prefix: "", Optional: true, Emit: emitSimpleTriggersModule},
	{Module: "triggers", Attr: "triggers", Prefix: "", Optional: true, Emit: emitTriggersModule},
	{Module: "skills", Attr: "skills", Prefix: "skl", Optional: true, Emit: emitSkills},
	{Module: "skins", Attr: "skins", Prefix: "skin", Optional: true, Emit: emitSkins},
	{Module: "skyboxes", Attr: "skyboxes", Prefix: "skybox", Optional: true, Emit: emitSkyboxes},
	{Module: "sounds", Attr: "sounds", Prefix: "snd", Optional: true, Emit: emitSounds},
	{Module: "strings", Attr: "strings", Prefix: "str", Optional: true, Emit: emitStrings},
	{Module: "tableau_materials", Attr: "tableau_materials", Prefix: "tab", Optional: true, Emit: emitTableauMaterials},
}

func init() {
	registerTags()
}

// registerTags hands every identifier-declaring module category a
// distinct operand tag byte, shifted into bit 56, skipping the four
// byte values the fixed register/global/local/quick-string tags
// already occupy.
func registerTags() {
	tag := int64(3) << 56
	for i := range moduleRegistry {
		if moduleRegistry[i].Prefix == "" {
			continue
		}
		for reservedOperandTags[tag] {
			tag += 1 << 56
		}
		moduleRegistry[i].Tag = tag
		tag += 1 << 56
	}
}

// Compiler holds every table a compilation pass shares: the identifier
// Registry, variable scopes, the quick string pool, resource reference
// counts, and the opcode metadata table, plus the Loader supplying
// module data and the Reporter diagnostics flow through.
type Compiler struct {
	Loader    Loader
	Reporter  *Reporter
	Registry  *Registry
	Variables *VariableTable
	Strings   *QuickStringPool
	Resources *ResourceTracker
	Opcodes   *OpcodeTable
	Options   Options
	Flags     Flag
}

// NewCompiler wires up a fresh, empty set of compiler tables around
// loader, ready to Compile.
func NewCompiler(loader Loader, opts Options) *Compiler {
	reporter := NewReporter(opts.Strict, opts.NoWarnings)
	return &Compiler{
		Loader:    loader,
		Reporter:  reporter,
		Registry:  NewRegistry(reporter),
		Variables: NewVariableTable(reporter),
		Strings:   NewQuickStringPool(),
		Resources: NewResourceTracker(),
		Opcodes:   NewOpcodeTable(reporter),
		Options:   opts,
	}
}

// Compile runs the full two-pass compilation: pass 1 declares every
// entity's identifier (so cross-module and forward references resolve
// regardless of load order) and writes the per-module ID export files;
// the Loader is then Reset so pass 2 starts from clean evaluator state
// and emits the full game data files, including the statement bodies
// pass 1 never compiled.
func (c *Compiler) Compile() error {
	for _, spec := range moduleRegistry {
		if spec.Prefix != "" {
			c.Registry.SetTag(spec.Prefix, spec.Tag)
		}
	}

	if err := c.loadHeaderOperations(); err != nil {
		return err
	}
	if err := c.loadGlobalVars(); err != nil {
		return err
	}

	for _, spec := range moduleRegistry {
		if err := c.declareModule(spec); err != nil {
			return fmt.Errorf("pass 1: module %s: %w", spec.Module, err)
		}
	}
	if !c.Options.SkipIDFiles {
		if err := c.writeIDFiles(); err != nil {
			return err
		}
	}

	if err := c.Loader.Reset(); err != nil {
		return fmt.Errorf("resetting loader between passes: %w", err)
	}

	for _, spec := range moduleRegistry {
		if err := spec.Emit(c); err != nil {
			return fmt.Errorf("pass 2: module %s: %w", spec.Module, err)
		}
	}
	if err := emitQuickStrings(c); err != nil {
		return fmt.Errorf("pass 2: quick strings: %w", err)
	}
	if c.Options.ListResources {
		if err := emitResourceUsage(c); err != nil {
			return fmt.Errorf("pass 2: resource usage: %w", err)
		}
	}

	c.reportVariableDiagnostics()
	return c.writeGlobalVars()
}

// outDir returns the directory output files are written to: OutPath,
// or OutPath/Data when -compile-data asks for the game's usual Data/
// layout instead of a flat directory.
func (c *Compiler) outDir() string {
	if c.Options.CompileData {
		return filepath.Join(c.Options.OutPath, "Data")
	}
	return c.Options.OutPath
}

// declareModule walks one module's entity list and registers each
// entity's name in its identifier category, without compiling any
// statement bodies.
func (c *Compiler) declareModule(spec moduleSpec) error {
	if spec.Prefix == "" {
		// An unnamed record list (triggers, simple_triggers) declares
		// no identifiers; its records are read directly in pass 2.
		return nil
	}
	v, err := c.Loader.Module(spec.Module, spec.Attr)
	if err != nil {
		if spec.Optional {
			return nil
		}
		return err
	}
	entities, ok := v.Seq()
	if !ok {
		return fmt.Errorf("module %s.%s is not a sequence", spec.Module, spec.Attr)
	}
	for i, e := range entities {
		name, err := entityName(e)
		if err != nil {
			return fmt.Errorf("%s entity %d: %w", spec.Module, i, err)
		}
		c.Registry.Declare(spec.Prefix, name)
	}
	return nil
}

// entityName extracts field 0 of an entity record as its identifier
// name, the convention every module's entity records share.
func entityName(v Value) (string, error) {
	f, err := At(v, 0)
	if err != nil {
		return "", err
	}
	s, ok := f.Str()
	if !ok {
		return "", fmt.Errorf("entity name field is not a string")
	}
	return s, nil
}

// loadHeaderOperations populates the OpcodeTable from
// header_operations.operations, a sequence of
// [opcode, flags, depth_delta] records.
func (c *Compiler) loadHeaderOperations() error {
	v, err := c.Loader.Module("header_operations", "operations")
	if err != nil {
		// header_operations is optional: a compiler run over modules
		// that only use opcodes with no LHS/GHS/CF behavior works fine
		// with an empty table.
		return nil
	}
	ops, ok := v.Seq()
	if !ok {
		return fmt.Errorf("header_operations.operations is not a sequence")
	}
	for i, rec := range ops {
		fields, ok := rec.Seq()
		if !ok || len(fields) < 3 {
			return fmt.Errorf("header_operations entry %d is malformed", i)
		}
		opcode, _ := fields[0].Int()
		flags, _ := fields[1].Int()
		delta, _ := fields[2].Int()
		if err := c.Opcodes.Register(uint32(opcode), OpFlag(flags), int(delta)); err != nil {
			return err
		}
	}
	return nil
}

// loadGlobalVars seeds the global variable scope from a previous run's
// variables.txt, if one exists in the output directory.
func (c *Compiler) loadGlobalVars() error {
	path := filepath.Join(c.outDir(), "variables.txt")
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	return c.Variables.LoadGlobals(f)
}

// writeGlobalVars persists the global variable scope back to
// variables.txt for the next run.
func (c *Compiler) writeGlobalVars() error {
	f, err := CreateOutputFile(c.outDir(), "variables.txt")
	if err != nil {
		return err
	}
	defer f.Close()
	var rename func(string) string
	if c.Options.HideGlobalVars {
		rename = obfuscateIdentifier
	}
	return c.Variables.WriteGlobalsNamed(f, rename)
}

// writeIDFiles writes one id export file per registered module, used
// by module authors to reference `trp_player`-style names by their
// assigned numeric ID without recompiling. Each value written is the
// entity's tagged operand value, its registry index with the
// category's operand tag OR'd in, unless -hide-tags asks for the bare
// index instead.
func (c *Compiler) writeIDFiles() error {
	for _, spec := range moduleRegistry {
		if spec.Prefix == "" {
			continue
		}
		f, err := CreateOutputFile(c.outDir(), "ids_"+spec.Module+".txt")
		if err != nil {
			return err
		}
		tag := int64(0)
		if !c.Options.HideTags {
			tag = spec.Tag
		}
		for i, name := range c.Registry.Names(spec.Prefix) {
			fmt.Fprintf(f, "%s_%s %d\n", spec.Prefix, name, tag|int64(i))
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

// reportVariableDiagnostics runs the post-compile global variable
// diagnostic pass: a global read but never assigned, or assigned but
// never read, is almost always a typo in a module author's script.
func (c *Compiler) reportVariableDiagnostics() {
	for _, v := range c.Variables.UnassignedGlobals() {
		c.Reporter.Warnf("$"+v.Name, "global variable is used but never assigned")
	}
	for _, v := range c.Variables.UnusedGlobals() {
		c.Reporter.Warnf("$"+v.Name, "global variable is assigned but never used")
	}
}
