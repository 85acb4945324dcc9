// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/DetectiveQuest/cmd/detective/config"
	"github.com/AleutianAI/DetectiveQuest/pkg/ux"
	"github.com/AleutianAI/DetectiveQuest/services/quest/mansion"
	"github.com/AleutianAI/DetectiveQuest/services/quest/scenario"
	"github.com/AleutianAI/DetectiveQuest/services/quest/suspects"
)

// loadScenario resolves the case to inspect: the --variant flag if set,
// else the configured variant.
func loadScenario(root *rootOptions, variant string) (*scenario.Scenario, error) {
	if variant == "" {
		cfg, err := config.Load(root.configPath)
		if err != nil {
			return nil, err
		}
		variant = cfg.Game.Variant
	}
	return scenario.Load(variant)
}

func newMapCmd(root *rootOptions) *cobra.Command {
	var variant string

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Print the room tree of a case",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScenario(root, variant)
			if err != nil {
				return err
			}
			entrance, err := sc.BuildMansion()
			if err != nil {
				return err
			}
			defer entrance.Release()

			out := ux.NewNarrator(cmd.OutOrStdout())
			out.Title(sc.Title)
			entrance.Walk(func(depth int, room *mansion.Room) bool {
				label := room.Name
				if room.HasClue() {
					label += " [" + room.Clue + "]"
				}
				out.Tree(depth, label)
				return true
			})
			out.Blank()
			out.Muted(fmt.Sprintf("%d cômodos", entrance.Count()))
			return nil
		},
	}
	cmd.Flags().StringVar(&variant, "variant", "", "case to inspect")
	return cmd
}

func newSuspectsCmd(root *rootOptions) *cobra.Command {
	var (
		variant string
		buckets int
	)

	cmd := &cobra.Command{
		Use:   "suspects",
		Short: "Print the suspect index bucket by bucket",
		Long: `Print the suspect index bucket by bucket.

Buckets come from h = h*31 + b over the UTF-8 bytes of the clue, read as
unsigned values. Clues with accented letters (ã, ç, é) therefore land in
different buckets than with a signed-char hash; lookups are unaffected.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScenario(root, variant)
			if err != nil {
				return err
			}
			index, err := sc.BuildIndex(buckets)
			if err != nil {
				return err
			}
			defer index.Release()

			out := ux.NewNarrator(cmd.OutOrStdout())
			out.Title(fmt.Sprintf("Suspeitos: %d associações em %d baldes", index.Len(), index.Buckets()))
			for b := 0; b < index.Buckets(); b++ {
				chain := index.Chain(b)
				if len(chain) == 0 {
					out.Linef("[%d] (vazio)", b)
					continue
				}
				links := make([]string, len(chain))
				for i, e := range chain {
					links[i] = fmt.Sprintf("%s -> %s", e.Clue, e.Suspect)
				}
				out.Linef("[%d] %s", b, strings.Join(links, " | "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&variant, "variant", "", "case to inspect")
	cmd.Flags().IntVar(&buckets, "buckets", suspects.DefaultBuckets, "bucket count")
	return cmd
}

func newHashCmd() *cobra.Command {
	var buckets int

	cmd := &cobra.Command{
		Use:   "hash <text>",
		Short: "Print the suspect index bucket of a clue text",
		Example: `  detective hash "Anel de Prata"
  detective hash --buckets 7 "Faca suja"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if buckets < 1 {
				return suspects.ErrInvalidBuckets
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", suspects.Hash(args[0], buckets))
			return nil
		},
	}
	cmd.Flags().IntVar(&buckets, "buckets", suspects.DefaultBuckets, "bucket count")
	return cmd
}

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the embedded cases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := ux.NewNarrator(cmd.OutOrStdout())
			for _, name := range scenario.Names() {
				sc, err := scenario.Load(name)
				if err != nil {
					return err
				}
				out.Bullet(fmt.Sprintf("%s: %s (%d cômodos)", name, sc.Title, len(sc.Rooms)))
			}
			return nil
		},
	}
}
