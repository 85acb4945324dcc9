// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package judgment

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AleutianAI/DetectiveQuest/pkg/logging"
	"github.com/AleutianAI/DetectiveQuest/pkg/telemetry"
	"github.com/AleutianAI/DetectiveQuest/pkg/ux"
	"github.com/AleutianAI/DetectiveQuest/services/quest/clues"
	"github.com/AleutianAI/DetectiveQuest/services/quest/suspects"
)

// ErrNoAccusation is returned when input ends before a name is given.
var ErrNoAccusation = errors.New("no suspect was accused")

// Engine runs the judgment phase.
type Engine struct {
	threshold int
	input     ux.InputReader
	out       *ux.Narrator
	logger    *logging.Logger
}

// NewEngine creates an Engine. A threshold below 1 means DefaultThreshold.
func NewEngine(threshold int, input ux.InputReader, out *ux.Narrator, logger *logging.Logger) *Engine {
	if threshold < 1 {
		threshold = DefaultThreshold
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Engine{
		threshold: threshold,
		input:     input,
		out:       out,
		logger:    logger,
	}
}

// Threshold returns the number of matching clues needed for success.
func (e *Engine) Threshold() int {
	return e.threshold
}

// Judge lists the evidence, asks for an accusation and announces the verdict.
//
// An empty store does not prevent the accusation; the player is warned and
// the verdict is a failure. Blank answers are asked again.
func (e *Engine) Judge(ctx context.Context, store *clues.Store, index *suspects.Index) (*Verdict, error) {
	ctx, span := startJudgeSpan(ctx, store.Len(), e.threshold)
	defer span.End()

	e.out.Blank()
	e.out.Title("FASE DE JULGAMENTO")

	if store.Len() == 0 {
		e.out.Warning("Você não coletou nenhuma pista. A acusação será apenas um palpite!")
	} else {
		e.out.Line("Pistas coletadas (em ordem alfabética):")
		for clue := range store.All() {
			e.out.Bullet(clue)
		}
	}

	accused, err := e.askAccused(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	e.out.Blank()
	e.out.Linef("Analisando as evidências coletadas contra %s...", accused)

	v := Decide(store, index, accused, e.threshold)
	for _, clue := range v.Evidence {
		e.out.Bullet(fmt.Sprintf("[+] Pista '%s' aponta para %s.", clue, accused))
	}

	e.announce(v)

	setJudgeSpanResult(span, v)
	recordVerdict(ctx, v)
	e.logger.Info("verdict",
		"accused", v.Accused,
		"tally", v.Tally,
		"threshold", v.Threshold,
		"success", v.Success,
	)
	return &v, nil
}

func (e *Engine) askAccused(ctx context.Context) (string, error) {
	e.out.Blank()
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		line, err := ux.Ask(e.input, e.out, "Com base nas evidências, quem você acusa?")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", ErrNoAccusation
			}
			return "", fmt.Errorf("read accusation: %w", err)
		}
		if line != "" {
			return line, nil
		}
		e.out.Warning("Digite o nome de um suspeito.")
	}
}

func (e *Engine) announce(v Verdict) {
	e.out.Blank()
	e.out.Linef("Número total de pistas contra %s: %d", v.Accused, v.Tally)

	if v.Success {
		e.out.Box(
			"SUCESSO!",
			fmt.Sprintf("%s foi formalmente acusado(a)! %d pistas sustentam a sua conclusão. Caso resolvido!", v.Accused, v.Tally),
		)
		return
	}
	e.out.WarningBox(
		"FRACASSO!",
		fmt.Sprintf("A acusação contra %s não pode ser sustentada. Você precisa de pelo menos %d pistas.", v.Accused, v.Threshold),
	)
}
