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

import "fmt"

// fieldStr returns fields[i] as a string, or def if fields is too short
// or the field isn't a string, the shape every minor entity emitter
// below needs for its handful of optional trailing fields.
func fieldStr(fields []Value, i int, def string) string {
	if i >= len(fields) {
		return def
	}
	s, ok := fields[i].Str()
	if !ok {
		return def
	}
	return s
}

func fieldInt(fields []Value, i int, def int64) int64 {
	if i >= len(fields) {
		return def
	}
	n, ok := fields[i].Int()
	if !ok {
		return def
	}
	return n
}

// The emitters in this file cover the long tail of entity kinds the
// header documents with an "obvious schema" shrug: a short, flat
// record whose fields are a handful of scalars and resource names, no
// statement bodies or trigger envelopes. Each is a thin closure over
// emitEntityList; the kinds with real behavior (dialog_states,
// mission_templates, presentations, the unnamed triggers/simple_triggers
// lists) get their own file.

func emitAnimations(c *Compiler) error {
	return emitEntityList(c, "animations", "animations", "animations.txt", "", func(i int, name string, fields []Value) (string, error) {
		file := fieldStr(fields, 1, name)
		channel := fieldStr(fields, 2, "lower_body")
		c.Resources.Reference(ResourceAnimation, file)
		return fmt.Sprintf("anim_%s %s %s", name, encodeRes(file), channel), nil
	})
}

func emitFloraKinds(c *Compiler) error {
	return emitEntityList(c, "flora_kinds", "flora_kinds", "flora_kinds.txt", "", func(i int, name string, fields []Value) (string, error) {
		mesh := fieldStr(fields, 1, "")
		density := fieldInt(fields, 2, 1)
		c.Resources.Reference(ResourceMesh, mesh)
		return fmt.Sprintf("flora_%s %s %d", name, encodeRes(mesh), density), nil
	})
}

func emitGroundSpecs(c *Compiler) error {
	return emitEntityList(c, "ground_specs", "ground_specs", "ground_specs.txt", "", func(i int, name string, fields []Value) (string, error) {
		texture := fieldStr(fields, 1, "")
		material := fieldInt(fields, 2, 0)
		return fmt.Sprintf("ground_%s %s %d", name, encodeRes(texture), material), nil
	})
}

func emitInfoPages(c *Compiler) error {
	return emitEntityList(c, "info_pages", "info_pages", "info_pages.txt", "", func(i int, name string, fields []Value) (string, error) {
		title := fieldStr(fields, 1, name)
		text := fieldStr(fields, 2, "")
		qkey := c.Strings.GetOrCreate(name, text)
		return fmt.Sprintf("ip_%s %s %s", name, encodeStrip(title), qkey), nil
	})
}

func emitMapIcons(c *Compiler) error {
	return emitEntityList(c, "map_icons", "map_icons", "map_icons.txt", "", func(i int, name string, fields []Value) (string, error) {
		mesh := fieldStr(fields, 1, "")
		material := fieldStr(fields, 2, "")
		c.Resources.Reference(ResourceMesh, mesh)
		if material != "" {
			c.Resources.Reference(ResourceMaterial, material)
		}
		return fmt.Sprintf("icon_%s %s %s", name, encodeRes(mesh), encodeRes(material)), nil
	})
}

func emitMenus(c *Compiler) error {
	return emitEntityList(c, "menus", "menus", "menus.txt", "", func(i int, name string, fields []Value) (string, error) {
		text := fieldStr(fields, 1, "")
		flags := fieldInt(fields, 2, 0)
		qkey := c.Strings.GetOrCreate(name, text)
		return fmt.Sprintf("mnu_%s %d %s", name, flags, qkey), nil
	})
}

func emitMeshes(c *Compiler) error {
	return emitEntityList(c, "meshes", "meshes", "meshes.txt", "", func(i int, name string, fields []Value) (string, error) {
		mesh := fieldStr(fields, 1, name)
		material := fieldStr(fields, 2, "")
		c.Resources.Reference(ResourceMesh, mesh)
		if material != "" {
			c.Resources.Reference(ResourceMaterial, material)
		}
		return fmt.Sprintf("mesh_%s %s %s", name, encodeRes(mesh), encodeRes(material)), nil
	})
}

func emitMusic(c *Compiler) error {
	return emitEntityList(c, "music", "tracks", "music.txt", "", func(i int, name string, fields []Value) (string, error) {
		file := fieldStr(fields, 1, name)
		flags := fieldInt(fields, 2, 0)
		return fmt.Sprintf("track_%s %s %d", name, encodeRes(file), flags), nil
	})
}

func emitParticleSystems(c *Compiler) error {
	return emitEntityList(c, "particle_systems", "particle_systems", "particle_systems.txt", "", func(i int, name string, fields []Value) (string, error) {
		mesh := fieldStr(fields, 1, "")
		material := fieldStr(fields, 2, "")
		c.Resources.Reference(ResourceMesh, mesh)
		if material != "" {
			c.Resources.Reference(ResourceMaterial, material)
		}
		return fmt.Sprintf("psys_%s %s %s", name, encodeRes(mesh), encodeRes(material)), nil
	})
}

func emitParties(c *Compiler) error {
	return emitEntityList(c, "parties", "parties", "parties.txt", "", func(i int, name string, fields []Value) (string, error) {
		flags := fieldInt(fields, 1, 0)
		template := fieldStr(fields, 2, "")
		if template != "" {
			c.Registry.Resolve("pt", template)
		}
		return fmt.Sprintf("p_%s %d pt_%s", name, flags, template), nil
	})
}

func emitPartyTemplates(c *Compiler) error {
	return emitEntityList(c, "party_templates", "party_templates", "party_templates.txt", "", func(i int, name string, fields []Value) (string, error) {
		flags := fieldInt(fields, 1, 0)
		member := fieldStr(fields, 2, "")
		if member != "" {
			c.Registry.Resolve("trp", member)
		}
		return fmt.Sprintf("pt_%s %d trp_%s", name, flags, member), nil
	})
}

func emitPostEffects(c *Compiler) error {
	return emitEntityList(c, "postfx", "post_effects", "post_effects.txt", "", func(i int, name string, fields []Value) (string, error) {
		p1 := fieldStr(fields, 1, "")
		p2 := fieldStr(fields, 2, "")
		return fmt.Sprintf("pfx_%s %s %s", name, p1, p2), nil
	})
}

func emitQuests(c *Compiler) error {
	return emitEntityList(c, "quests", "quests", "quests.txt", "", func(i int, name string, fields []Value) (string, error) {
		title := fieldStr(fields, 1, name)
		text := fieldStr(fields, 2, "")
		qkey := c.Strings.GetOrCreate(name, text)
		return fmt.Sprintf("qst_%s %s %s", name, encodeStrip(title), qkey), nil
	})
}

func emitSceneProps(c *Compiler) error {
	return emitEntityList(c, "scene_props", "scene_props", "scene_props.txt", "", func(i int, name string, fields []Value) (string, error) {
		mesh := fieldStr(fields, 1, "")
		physics := fieldStr(fields, 2, "0")
		c.Resources.Reference(ResourceMesh, mesh)
		c.Resources.Reference(ResourceBody, physics)
		return fmt.Sprintf("spr_%s %s %s", name, encodeRes(mesh), encodeRes(physics)), nil
	})
}

func emitScenes(c *Compiler) error {
	return emitEntityList(c, "scenes", "scenes", "scenes.txt", "", func(i int, name string, fields []Value) (string, error) {
		flags := fieldInt(fields, 1, 0)
		return fmt.Sprintf("scn_%s %d", name, flags), nil
	})
}

func emitSkills(c *Compiler) error {
	return emitEntityList(c, "skills", "skills", "skills.txt", "", func(i int, name string, fields []Value) (string, error) {
		displayName := fieldStr(fields, 1, name)
		qkey := c.Strings.GetOrCreate(name, displayName)
		return fmt.Sprintf("skl_%s %s", name, qkey), nil
	})
}

func emitSkins(c *Compiler) error {
	return emitEntityList(c, "skins", "skins", "skins.txt", "", func(i int, name string, fields []Value) (string, error) {
		mesh := fieldStr(fields, 1, "")
		voice := fieldStr(fields, 2, "")
		c.Resources.Reference(ResourceMesh, mesh)
		return fmt.Sprintf("skin_%s %s %s", name, encodeRes(mesh), encodeRes(voice)), nil
	})
}

func emitSkyboxes(c *Compiler) error {
	return emitEntityList(c, "skyboxes", "skyboxes", "skyboxes.txt", "", func(i int, name string, fields []Value) (string, error) {
		material := fieldStr(fields, 1, "")
		c.Resources.Reference(ResourceMaterial, material)
		return fmt.Sprintf("skybox_%s %s", name, encodeRes(material)), nil
	})
}

func emitSounds(c *Compiler) error {
	return emitEntityList(c, "sounds", "sounds", "sounds.txt", "", func(i int, name string, fields []Value) (string, error) {
		file := fieldStr(fields, 1, name)
		return fmt.Sprintf("snd_%s %s", name, encodeRes(file)), nil
	})
}

func emitStrings(c *Compiler) error {
	return emitEntityList(c, "strings", "strings", "strings.txt", "", func(i int, name string, fields []Value) (string, error) {
		text := fieldStr(fields, 1, "")
		qkey := c.Strings.GetOrCreate(name, text)
		return fmt.Sprintf("str_%s %s", name, qkey), nil
	})
}

func emitTableauMaterials(c *Compiler) error {
	return emitEntityList(c, "tableau_materials", "tableau_materials", "tableau_materials.txt", "", func(i int, name string, fields []Value) (string, error) {
		material := fieldStr(fields, 1, "")
		mesh := fieldStr(fields, 2, "")
		c.Resources.Reference(ResourceMaterial, material)
		if mesh != "" {
			c.Resources.Reference(ResourceMesh, mesh)
		}
		return fmt.Sprintf("tab_%s %s %s", name, encodeRes(material), encodeRes(mesh)), nil
	})
}
