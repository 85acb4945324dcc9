// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package explore

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/DetectiveQuest/services/quest/clues"
)

// Package-level tracer and meter for exploration.
var (
	tracer = otel.Tracer("detective.explore")
	meter  = otel.Meter("detective.explore")
)

var (
	roomsEntered    metric.Int64Counter
	cluesSeen       metric.Int64Counter
	invalidCommands metric.Int64Counter
	explorations    metric.Int64Counter
	pathLength      metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		roomsEntered, err = meter.Int64Counter(
			"explore_rooms_entered_total",
			metric.WithDescription("Rooms entered by players"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		cluesSeen, err = meter.Int64Counter(
			"explore_clues_total",
			metric.WithDescription("Clues found in rooms, by insert result"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		invalidCommands, err = meter.Int64Counter(
			"explore_invalid_commands_total",
			metric.WithDescription("Navigation commands that did not move the player"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		explorations, err = meter.Int64Counter(
			"explore_sessions_total",
			metric.WithDescription("Finished explorations, by end reason"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		pathLength, err = meter.Int64Histogram(
			"explore_path_length",
			metric.WithDescription("Rooms visited per exploration"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func recordRoom(ctx context.Context, deadEnd bool) {
	if err := initMetrics(); err != nil {
		return
	}
	roomsEntered.Add(ctx, 1, metric.WithAttributes(attribute.Bool("dead_end", deadEnd)))
}

func recordClue(ctx context.Context, result clues.InsertResult) {
	if err := initMetrics(); err != nil {
		return
	}
	cluesSeen.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result.String())))
}

func recordInvalid(ctx context.Context, cmd Command) {
	if err := initMetrics(); err != nil {
		return
	}
	invalidCommands.Add(ctx, 1, metric.WithAttributes(attribute.String("command", cmd.String())))
}

func recordExploration(ctx context.Context, res *Result) {
	if err := initMetrics(); err != nil {
		return
	}
	explorations.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", string(res.Reason))))
	pathLength.Record(ctx, int64(res.Visited))
}

// startExploreSpan creates a span for one exploration.
func startExploreSpan(ctx context.Context, entrance string, policy Policy) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Engine.Explore",
		trace.WithAttributes(
			attribute.String("explore.entrance", entrance),
			attribute.Bool("explore.collect_clues", policy.CollectClues),
			attribute.Bool("explore.stop_at_dead_end", policy.StopAtDeadEnd),
		),
	)
}

// setExploreSpanResult sets the result attributes on an exploration span.
func setExploreSpanResult(span trace.Span, res *Result) {
	span.SetAttributes(
		attribute.Int("explore.visited", res.Visited),
		attribute.Int("explore.collected", res.Collected),
		attribute.String("explore.reason", string(res.Reason)),
	)
}
