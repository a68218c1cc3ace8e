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

// Loader is the compiler's only dependency on the host side: it
// evaluates the declarative module definitions (module_troops,
// module_items, header_operations, module_info, ...) and exposes each
// module's top-level sequence as a Value. The compiler core never reads
// source files or runs a scripting evaluator itself; a Loader does that
// and is free to cache, reload, or shell out to a real interpreter.
//
// Reset tears down and reconstructs whatever backs the Loader so that
// pass-1 side effects (an evaluator that mutates global state while
// executing module bodies) don't leak into pass 2, mirroring
// ModuleSystem::Compile's UnloadPythonInterpreter/LoadPythonInterpreter
// pair between passes.
type Loader interface {
	// Module returns the named module's top-level value (e.g. the
	// list bound to module_troops.troops).
	Module(moduleName, attrName string) (Value, error)
	// Reset discards any state accumulated by a previous pass.
	Reset() error
}
