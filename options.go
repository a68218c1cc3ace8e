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

	"github.com/spf13/cobra"
)

// NewRootCommand builds the compiler's CLI surface: -in-path defaults
// to the current directory (module_*.json files are expected there),
// -out-path defaults to -in-path if unset, and -strict/-no-warnings
// toggle the Reporter's severity handling, mirroring cMS.cpp's option
// table.
func NewRootCommand() *cobra.Command {
	var opts Options

	cmd := &cobra.Command{
		Use:   "msc",
		Short: "Compile declarative module definitions into game data files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.InPath == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				opts.InPath = wd
			}
			if opts.OutPath == "" {
				opts.OutPath = opts.InPath
			}

			loader := NewJSONLoader(opts.InPath)
			compiler := NewCompiler(loader, opts)
			return compiler.Compile()
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.InPath, "in-path", "", "directory containing module_*.json files (default: current directory)")
	flags.StringVar(&opts.OutPath, "out-path", "", "directory to write compiled data files to (default: -in-path)")
	flags.BoolVar(&opts.Strict, "strict", false, "treat errors as fatal instead of merely failing the run")
	flags.BoolVar(&opts.NoWarnings, "no-warnings", false, "suppress warning-level diagnostics")
	flags.BoolVar(&opts.SkipIDFiles, "skip-id-files", false, "don't write the ids_<module>.txt export files")
	flags.BoolVar(&opts.ListResources, "list-resources", false, "write resource_usage.txt, a reference count per mesh/material/skeleton/body/animation name")
	flags.BoolVar(&opts.HideGlobalVars, "hide-global-vars", false, "obfuscate global variable names in variables.txt")
	flags.BoolVar(&opts.HideScripts, "hide-scripts", false, "obfuscate script identifiers in scripts.txt")
	flags.BoolVar(&opts.ListObfuscatedScripts, "list-obfuscated-scripts", false, "write obfuscated_scripts.txt mapping real script names to their obfuscated form")
	flags.BoolVar(&opts.HideDialogStates, "hide-dialog-states", false, "obfuscate dialog state identifiers in dialog_states.txt")
	flags.BoolVar(&opts.HideTags, "hide-tags", false, "suppress the per-category tag byte in the ids_<module>.txt export files")
	flags.BoolVar(&opts.CompileData, "compile-data", false, "write output files under a Data/ subdirectory of -out-path")
	flags.BoolVar(&opts.ListUnreferencedScripts, "list-unreferenced-scripts", false, "write unreferenced_scripts.txt, every declared script never referenced by any compiled statement")
	flags.BoolVar(&opts.RusmodRebalancer, "rusmod_rebalanser", false, "recompute each item's difficulty field from its weight and damage instead of the authored value")

	return cmd
}
