// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package session runs one complete game: build the mansion and the suspect
// index from a scenario, explore, judge, and release everything.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AleutianAI/DetectiveQuest/pkg/logging"
	"github.com/AleutianAI/DetectiveQuest/pkg/ux"
	"github.com/AleutianAI/DetectiveQuest/services/quest/clues"
	"github.com/AleutianAI/DetectiveQuest/services/quest/explore"
	"github.com/AleutianAI/DetectiveQuest/services/quest/judgment"
	"github.com/AleutianAI/DetectiveQuest/services/quest/mansion"
	"github.com/AleutianAI/DetectiveQuest/services/quest/scenario"
	"github.com/AleutianAI/DetectiveQuest/services/quest/suspects"
)

var (
	// ErrNilScenario is returned by New without a scenario.
	ErrNilScenario = errors.New("session needs a scenario")

	// ErrNoInput is returned by New without an input reader.
	ErrNoInput = errors.New("session needs an input reader")

	// ErrSessionClosed is returned by Run on a session that already ran.
	ErrSessionClosed = errors.New("session already ran")
)

// Options configures a Session. Zero values select the defaults.
type Options struct {
	// Buckets is the suspect index size. Default suspects.DefaultBuckets.
	Buckets int

	// Threshold is the number of matching clues needed to convict.
	// Default judgment.DefaultThreshold.
	Threshold int

	// Input supplies player commands. Required.
	Input ux.InputReader

	// Narrator receives the story. Required.
	Narrator *ux.Narrator

	// Logger receives diagnostics. Default: discard.
	Logger *logging.Logger
}

// Released counts what the teardown freed.
type Released struct {
	Rooms    int
	Clues    int
	Suspects int
}

// Report summarizes a finished session.
type Report struct {
	SessionID string
	Scenario  string
	Variant   scenario.Variant

	Exploration *explore.Result

	// Clues are the collected clues in ascending order.
	Clues []string

	// Verdict is nil unless the variant judges.
	Verdict *judgment.Verdict

	Released Released
}

// Session owns the structures of one game.
type Session struct {
	ID string

	scenario *scenario.Scenario
	opts     Options
	logger   *logging.Logger

	entrance *mansion.Room
	index    *suspects.Index
	store    *clues.Store
	ran      bool
}

// New builds the mansion and the suspect index for sc.
func New(sc *scenario.Scenario, opts Options) (*Session, error) {
	if sc == nil {
		return nil, ErrNilScenario
	}
	if opts.Input == nil {
		return nil, ErrNoInput
	}
	if opts.Buckets == 0 {
		opts.Buckets = suspects.DefaultBuckets
	}
	if opts.Threshold < 1 {
		opts.Threshold = judgment.DefaultThreshold
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	entrance, err := sc.BuildMansion()
	if err != nil {
		return nil, err
	}
	index, err := sc.BuildIndex(opts.Buckets)
	if err != nil {
		entrance.Release()
		return nil, err
	}

	id := uuid.NewString()
	logger := opts.Logger.With("session_id", id, "scenario", sc.Name)
	logger.Debug("session built",
		"rooms", entrance.Count(),
		"suspects", index.Len(),
		"buckets", index.Buckets(),
	)

	return &Session{
		ID:       id,
		scenario: sc,
		opts:     opts,
		logger:   logger,
		entrance: entrance,
		index:    index,
		store:    clues.New(),
	}, nil
}

// Run plays the game once. Every structure is released before Run returns,
// on success and on error alike.
func (s *Session) Run(ctx context.Context) (report *Report, err error) {
	if s.ran {
		return nil, ErrSessionClosed
	}
	s.ran = true

	report = &Report{
		SessionID: s.ID,
		Scenario:  s.scenario.Name,
		Variant:   s.scenario.Variant,
	}
	defer func() {
		report.Released = s.release()
		s.logger.Debug("session released",
			"rooms", report.Released.Rooms,
			"clues", report.Released.Clues,
			"suspects", report.Released.Suspects,
		)
	}()

	out := s.opts.Narrator
	variant := s.scenario.Variant

	out.Title(s.scenario.Title)
	out.Flavor("A porta range atrás de você. A mansão guarda seus segredos.")

	explorer := explore.NewEngine(variant.Policy(), s.opts.Input, out, s.logger)
	result, err := explorer.Explore(ctx, s.entrance, s.store)
	report.Exploration = result
	if err != nil {
		return report, fmt.Errorf("explore: %w", err)
	}
	report.Clues = s.store.List()

	switch {
	case variant.Judges():
		out.Blank()
		out.Line("Fim da exploração. Preparando para a fase de julgamento...")
		judge := judgment.NewEngine(s.opts.Threshold, s.opts.Input, out, s.logger)
		verdict, err := judge.Judge(ctx, s.store, s.index)
		report.Verdict = verdict
		if err != nil {
			return report, fmt.Errorf("judge: %w", err)
		}

	case variant.ListsClues():
		s.listClues(report.Clues)
	}

	out.Blank()
	out.Line("Exploração encerrada. Obrigado por jogar!")

	s.logger.Info("session finished",
		"reason", result.Reason,
		"visited", result.Visited,
		"clues", len(report.Clues),
	)
	return report, nil
}

func (s *Session) listClues(collected []string) {
	out := s.opts.Narrator
	out.Blank()
	out.Title("Pistas Coletadas (em ordem alfabética)")
	if len(collected) == 0 {
		out.Warning("Nenhuma pista foi coletada!")
		return
	}
	for _, clue := range collected {
		out.Clue(clue)
	}
}

// release frees the mansion, the clue store and the suspect index.
func (s *Session) release() Released {
	r := Released{
		Rooms:    s.entrance.Release(),
		Clues:    s.store.Release(),
		Suspects: s.index.Release(),
	}
	s.entrance = nil
	return r
}
