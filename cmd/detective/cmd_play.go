// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/DetectiveQuest/cmd/detective/config"
	"github.com/AleutianAI/DetectiveQuest/pkg/logging"
	"github.com/AleutianAI/DetectiveQuest/pkg/telemetry"
	"github.com/AleutianAI/DetectiveQuest/pkg/ux"
	"github.com/AleutianAI/DetectiveQuest/services/quest/judgment"
	"github.com/AleutianAI/DetectiveQuest/services/quest/scenario"
	"github.com/AleutianAI/DetectiveQuest/services/quest/session"
)

type playFlags struct {
	variant   string
	input     string
	threshold int
	buckets   int
	logLevel  string
}

func newPlayCmd(root *rootOptions) *cobra.Command {
	flags := &playFlags{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a case",
		Long: `Play a case in the console.

Ctrl+C ends the game. In plain input mode the interrupt is noticed once the
current line is entered; a second Ctrl+C quits immediately.`,
		Example: `  detective play
  detective play --variant novato
  printf 'e\nd\ns\nCecilia\n' | detective play --personality machine`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, root, flags)
			if err != nil {
				return err
			}
			return runPlay(cmd, root, cfg)
		},
	}

	cmd.Flags().StringVar(&flags.variant, "variant", "", "case to play: novato, aventureiro, mestre")
	cmd.Flags().StringVar(&flags.input, "input", "", "input mode: auto, plain, interactive, form")
	cmd.Flags().IntVar(&flags.threshold, "threshold", 0, "matching clues needed to convict")
	cmd.Flags().IntVar(&flags.buckets, "buckets", 0, "suspect index bucket count")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	return cmd
}

// loadConfig reads the config file and applies the flags that were set.
func loadConfig(cmd *cobra.Command, root *rootOptions, flags *playFlags) (config.DetectiveConfig, error) {
	cfg, err := config.Load(root.configPath)
	if err != nil {
		return cfg, err
	}

	f := cmd.Flags()
	if f.Changed("variant") {
		cfg.Game.Variant = flags.variant
	}
	if f.Changed("input") {
		cfg.UX.InputMode = flags.input
	}
	if f.Changed("threshold") {
		cfg.Game.AccusationThreshold = flags.threshold
	}
	if f.Changed("buckets") {
		cfg.Game.SuspectBuckets = flags.buckets
	}
	if f.Changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if root.personality == "" && cfg.UX.Personality != "" {
		ux.SetPersonalityLevel(ux.ParsePersonalityLevel(cfg.UX.Personality))
	}

	if err := config.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runPlay(cmd *cobra.Command, root *rootOptions, cfg config.DetectiveConfig) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := ux.NewNarrator(cmd.OutOrStdout())

	logger := logging.New(logging.Config{
		Level:   logging.ParseLevel(cfg.Logging.Level),
		LogDir:  cfg.Logging.Dir,
		Service: "detective",
		JSON:    cfg.Logging.JSON,
		Quiet:   cfg.Logging.Quiet,
		Output:  cmd.ErrOrStderr(),
	})
	defer logger.Close()

	tcfg := telemetry.DefaultConfig()
	tcfg.TraceExporter = cfg.Telemetry.TraceExporter
	tcfg.MetricExporter = cfg.Telemetry.MetricExporter
	tcfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	tcfg.MetricsFile = config.ExpandHome(cfg.Telemetry.MetricsFile)
	tcfg.Writer = cmd.ErrOrStderr()

	shutdown, err := telemetry.Init(ctx, tcfg)
	if err != nil {
		return setupFailed(out, logger, "telemetry setup failed", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	sc, err := scenario.Load(cfg.Game.Variant)
	if err != nil {
		return setupFailed(out, logger, "scenario load failed", err, "variant", cfg.Game.Variant)
	}

	mode, err := ux.ParseInputMode(cfg.UX.InputMode)
	if err != nil {
		return setupFailed(out, logger, "invalid input mode", err)
	}

	s, err := session.New(sc, session.Options{
		Buckets:   cfg.Game.SuspectBuckets,
		Threshold: cfg.Game.AccusationThreshold,
		Input:     newInputReader(cmd.InOrStdin(), mode, cfg.Game.MaxInputLength),
		Narrator:  out,
		Logger:    logger,
	})
	if err != nil {
		return setupFailed(out, logger, "session setup failed", err)
	}
	logger.Info("session started",
		"session_id", s.ID,
		"variant", sc.Variant,
		"config", root.configPath,
	)

	report, err := s.Run(ctx)
	switch {
	case errors.Is(err, judgment.ErrNoAccusation):
		// Input ran out before an accusation. The game is over, not broken.
		logger.Warn("session ended without an accusation", "session_id", s.ID)
		return nil
	case errors.Is(err, context.Canceled):
		out.Blank()
		out.Warning("Jogo interrompido.")
		logger.Warn("session interrupted", "session_id", s.ID)
		return nil
	case err != nil:
		return fmt.Errorf("session %s: %w", s.ID, err)
	}

	logger.Debug("session report",
		"session_id", report.SessionID,
		"rooms_released", report.Released.Rooms,
		"clues_released", report.Released.Clues,
		"suspects_released", report.Released.Suspects,
	)
	return nil
}

// setupFailed shows err to the player and logs it before play aborts.
func setupFailed(out *ux.Narrator, logger *logging.Logger, msg string, err error, attrs ...any) error {
	out.Error(fmt.Sprintf("%s: %v", msg, err))
	logger.Error(msg, append(attrs, "error", err)...)
	return err
}

// newInputReader uses the terminal-aware readers for a real stdin and a
// plain line reader for anything else (pipes set by tests, here-docs).
func newInputReader(in io.Reader, mode ux.InputMode, maxLen int) ux.InputReader {
	if f, ok := in.(*os.File); ok {
		return ux.NewInputReader(mode, f, maxLen)
	}
	return ux.NewLineReader(in, maxLen)
}
