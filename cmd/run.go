/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"log"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/gorbms/gomor/experiment"
)

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run SETTINGSFILE",
	Short: "Run the greedy reduced-basis experiment described by an INI settings file",
	Long: `
Runs the full experiment pipeline against the given settings file: resolve
the [pymor] options, build the detailed discretizations, draw the training
set, run greedy basis generation for the selected framework (rb or lrbms)
and test the reduction quality over the test set.

gomor run SETTINGSFILE`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		if err := experiment.Run(args[0]); err != nil {
			log.Fatalf("error: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().BoolP("profile", "p", false, "write a CPU profile for the run")
}
