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

import "strings"

// The five string-encoding functions below mirror ModuleSystem.cpp's
// encode_str/encode_res/encode_full/encode_strip/encode_id exactly:
// each output file format depends on a specific one of them for a
// specific field, and emitters must use the same one the original
// emitter used for that field or the text files won't match the
// engine's expectations for whitespace-delimited tokens.

// encodeStr replaces whitespace that would otherwise break a
// whitespace-delimited text field with underscores.
func encodeStr(s string) string {
	r := strings.NewReplacer(" ", "_", "\t", "_")
	return r.Replace(s)
}

// encodeRes trims surrounding whitespace, then applies encodeStr. Used
// for resource names (meshes, materials, skeletons) pulled from
// free-form authoring fields.
func encodeRes(s string) string {
	return encodeStr(strings.TrimSpace(s))
}

// encodeFull applies encodeStr, then strips characters that would
// otherwise collide with the file format's own delimiters (',' field
// separators and '|' flag separators) and normalizes a handful of
// punctuation marks to underscore so display strings survive a round
// trip through the engine's own tokenizer.
func encodeFull(s string) string {
	s = encodeStr(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "|", "")
	r := strings.NewReplacer("'", "_", "`", "_", "(", "_", ")", "_", "-", "_")
	return r.Replace(s)
}

// encodeStrip trims surrounding whitespace, then applies encodeFull.
func encodeStrip(s string) string {
	return encodeFull(strings.TrimSpace(s))
}

// encodeID applies encodeFull and lowercases the result. Identifier
// registries key on the lowercased form, so any identifier text headed
// for a registry lookup must pass through this first.
func encodeID(s string) string {
	return strings.ToLower(encodeFull(s))
}
