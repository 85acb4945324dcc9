// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package judgment

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("detective.judgment")
	meter  = otel.Meter("detective.judgment")
)

var (
	verdictsTotal metric.Int64Counter
	tallyHist     metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		verdictsTotal, err = meter.Int64Counter(
			"judgment_verdicts_total",
			metric.WithDescription("Accusations judged, by outcome"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		tallyHist, err = meter.Int64Histogram(
			"judgment_tally",
			metric.WithDescription("Matching clues per accusation"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func recordVerdict(ctx context.Context, v Verdict) {
	if err := initMetrics(); err != nil {
		return
	}
	verdictsTotal.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", v.Success)))
	tallyHist.Record(ctx, int64(v.Tally))
}

func startJudgeSpan(ctx context.Context, clueCount, threshold int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Engine.Judge",
		trace.WithAttributes(
			attribute.Int("judgment.clues", clueCount),
			attribute.Int("judgment.threshold", threshold),
		),
	)
}

func setJudgeSpanResult(span trace.Span, v Verdict) {
	span.SetAttributes(
		attribute.String("judgment.accused", v.Accused),
		attribute.Int("judgment.tally", v.Tally),
		attribute.Bool("judgment.success", v.Success),
	)
}
