// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

// DetectiveConfig is the on-disk configuration of the detective CLI.
type DetectiveConfig struct {
	// Game: which case to play and its rules
	Game GameConfig `yaml:"game"`

	// Logging: diagnostics on stderr and optional JSON log files
	Logging LoggingConfig `yaml:"logging"`

	// UX: narration style and input method
	UX UXConfig `yaml:"ux"`

	// Telemetry: OpenTelemetry exporters
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type GameConfig struct {
	Variant             string `yaml:"variant" validate:"required,oneof=novato aventureiro mestre"`
	AccusationThreshold int    `yaml:"accusation_threshold" validate:"gte=1,lte=100"`
	SuspectBuckets      int    `yaml:"suspect_buckets" validate:"gte=1,lte=4096"`
	MaxInputLength      int    `yaml:"max_input_length" validate:"gte=1,lte=1024"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Dir   string `yaml:"dir,omitempty"` // e.g. ~/.detective-quest/logs
	JSON  bool   `yaml:"json"`
	Quiet bool   `yaml:"quiet"`
}

type UXConfig struct {
	// Personality is full, standard, minimal or machine. Empty detects
	// from the terminal and DETECTIVE_PERSONALITY.
	Personality string `yaml:"personality,omitempty" validate:"omitempty,oneof=full standard minimal machine"`
	InputMode   string `yaml:"input_mode" validate:"oneof=auto plain interactive form"`
}

type TelemetryConfig struct {
	TraceExporter  string `yaml:"trace_exporter" validate:"oneof=none stdout otlp"`
	MetricExporter string `yaml:"metric_exporter" validate:"oneof=none stdout prometheus"`
	OTLPEndpoint   string `yaml:"otlp_endpoint" validate:"required_if=TraceExporter otlp"`
	MetricsFile    string `yaml:"metrics_file" validate:"required_if=MetricExporter prometheus"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() DetectiveConfig {
	return DetectiveConfig{
		Game: GameConfig{
			Variant:             "mestre",
			AccusationThreshold: 2,
			SuspectBuckets:      10,
			MaxInputLength:      50,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
		UX: UXConfig{
			InputMode: "auto",
		},
		Telemetry: TelemetryConfig{
			TraceExporter:  "none",
			MetricExporter: "none",
			OTLPEndpoint:   "localhost:4317",
			MetricsFile:    "~/.detective-quest/metrics.prom",
		},
	}
}
