// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package explore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AleutianAI/DetectiveQuest/pkg/logging"
	"github.com/AleutianAI/DetectiveQuest/pkg/telemetry"
	"github.com/AleutianAI/DetectiveQuest/pkg/ux"
	"github.com/AleutianAI/DetectiveQuest/services/quest/clues"
	"github.com/AleutianAI/DetectiveQuest/services/quest/mansion"
)

// ErrNoEntrance is returned when Explore is given a nil starting room.
var ErrNoEntrance = errors.New("mansion has no entrance")

// Policy selects the variant-specific exploration rules.
type Policy struct {
	// CollectClues inserts each room's clue into the store on entry.
	CollectClues bool

	// StopAtDeadEnd ends exploration on entering a room with no exits.
	// Otherwise the player stays there until typing s.
	StopAtDeadEnd bool
}

// Reason tells why an exploration ended.
type Reason string

const (
	ReasonEnded       Reason = "ended"
	ReasonDeadEnd     Reason = "dead_end"
	ReasonInputClosed Reason = "input_closed"
)

// Result summarizes one exploration.
type Result struct {
	// Path holds the names of the rooms entered, in order.
	Path []string

	// Visited is len(Path).
	Visited int

	// Collected counts clues newly added to the store.
	Collected int

	// Repeated counts clues that were already in the store.
	Repeated int

	// Invalid counts commands that did not move the player.
	Invalid int

	Reason Reason
}

// Engine runs explorations. It holds no per-exploration state, so one
// Engine can run several explorations in sequence.
type Engine struct {
	policy Policy
	input  ux.InputReader
	out    *ux.Narrator
	logger *logging.Logger
}

// NewEngine creates an Engine. A nil logger discards diagnostics.
func NewEngine(policy Policy, input ux.InputReader, out *ux.Narrator, logger *logging.Logger) *Engine {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Engine{
		policy: policy,
		input:  input,
		out:    out,
		logger: logger,
	}
}

// Explore walks the mansion from start, collecting clues into store.
//
// store may be nil when the policy does not collect clues.
//
// # Outputs
//
// The Result is non-nil even when an error is returned, and reflects the
// rooms entered so far. Errors are a cancelled context or a failing reader;
// end of input is not an error.
func (e *Engine) Explore(ctx context.Context, start *mansion.Room, store *clues.Store) (*Result, error) {
	res := &Result{}
	if start == nil {
		return res, ErrNoEntrance
	}

	ctx, span := startExploreSpan(ctx, start.Name, e.policy)
	defer span.End()

	finish := func(reason Reason) (*Result, error) {
		res.Reason = reason
		setExploreSpanResult(span, res)
		recordExploration(ctx, res)
		e.logger.Info("exploration finished",
			"reason", reason,
			"visited", res.Visited,
			"collected", res.Collected,
		)
		return res, nil
	}

	current := start
	entered := true
	for {
		if err := ctx.Err(); err != nil {
			telemetry.RecordError(span, err)
			return res, err
		}

		if entered {
			entered = false
			e.enter(ctx, current, store, res)
			if e.policy.StopAtDeadEnd && current.IsDeadEnd() {
				e.out.Warning("Você chegou a um cômodo sem saídas. Fim da exploração!")
				return finish(ReasonDeadEnd)
			}
		}

		e.showExits(current)
		line, err := ux.Ask(e.input, e.out, "Opção:")
		if err != nil {
			if errors.Is(err, io.EOF) {
				e.out.Blank()
				e.out.Muted("Entrada encerrada. Fim da exploração.")
				return finish(ReasonInputClosed)
			}
			err = fmt.Errorf("read command: %w", err)
			telemetry.RecordError(span, err)
			return res, err
		}

		cmd := ParseCommand(line)
		switch cmd {
		case CommandStop:
			e.out.Blank()
			e.out.Line("Você decidiu encerrar a exploração.")
			return finish(ReasonEnded)

		case CommandLeft:
			if next := current.Left(); next != nil {
				current, entered = next, true
				continue
			}
			e.out.Warning("Não há saída para a esquerda neste cômodo. Tente outra direção.")

		case CommandRight:
			if next := current.Right(); next != nil {
				current, entered = next, true
				continue
			}
			e.out.Warning("Não há saída para a direita neste cômodo. Tente outra direção.")

		default:
			e.out.Warning("Opção inválida. Digite 'e', 'd' ou 's'.")
		}

		res.Invalid++
		recordInvalid(ctx, cmd)
		e.logger.Debug("command rejected", "room", current.Name, "input", line)
	}
}

// enter announces room and collects its clue.
func (e *Engine) enter(ctx context.Context, room *mansion.Room, store *clues.Store, res *Result) {
	res.Path = append(res.Path, room.Name)
	res.Visited++
	recordRoom(ctx, room.IsDeadEnd())

	e.out.Room(room.Name)
	e.logger.Debug("room entered", "room", room.Name, "step", res.Visited)

	if !e.policy.CollectClues {
		return
	}
	if !room.HasClue() {
		e.out.Muted("O cômodo parece estar limpo. Nenhuma pista visível aqui.")
		return
	}

	e.out.Clue(room.Clue)
	result := store.Insert(room.Clue)
	recordClue(ctx, result)

	switch result {
	case clues.Inserted:
		res.Collected++
		e.out.Success("Pista coletada e registrada.")
	case clues.Duplicate:
		res.Repeated++
		e.out.Info("Pista já havia sido coletada.")
	}
}

// showExits lists the directions available from room.
func (e *Engine) showExits(room *mansion.Room) {
	e.out.Blank()
	e.out.Line("Escolha o caminho:")
	if l := room.Left(); l != nil {
		e.out.Option("e", "Ir para "+l.Name)
	}
	if r := room.Right(); r != nil {
		e.out.Option("d", "Ir para "+r.Name)
	}
	e.out.Option("s", "Sair da exploração")
}
