// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"

	"github.com/AleutianAI/DetectiveQuest/pkg/ux"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath  string
	personality string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "detective",
		Short: "Detective Quest: explore the mansion, collect clues, accuse a suspect",
		Long: `Detective Quest is a console mystery. Walk the rooms of the mansion with
e (left), d (right) and s (stop), gather the clues you find and, in the
mestre case, name the culprit the evidence points to.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.personality != "" {
				ux.SetPersonalityLevel(ux.ParsePersonalityLevel(opts.personality))
			} else {
				ux.InitPersonality()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"config file (default ~/.detective-quest/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.personality, "personality", "",
		"output style: full, standard, minimal, machine (default: detect)")

	rootCmd.AddCommand(
		newPlayCmd(opts),
		newMapCmd(opts),
		newSuspectsCmd(opts),
		newHashCmd(),
		newScenariosCmd(),
		newConfigCmd(opts),
	)
	return rootCmd
}
