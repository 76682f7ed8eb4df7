// Package telemetry provides OpenTelemetry instrumentation for consultd.
//
// It manages a TracerProvider and MeterProvider backed by OTLP exporters
// and installs them as the global OTEL providers, so instrumented packages
// (the HTTP server, the consultation service) only need otel.Meter and
// otel.Tracer. Telemetry is disabled by default; when disabled or degraded
// the globals stay no-op and the application runs unaffected.
//
// Configuration:
//
//	telemetry:
//	  enabled: true
//	  endpoint: "localhost:4317"
//	  protocol: "grpc"        # or "http/protobuf"
//	  insecure: true          # local collectors only
//	  sampling_rate: 1.0
//	  export_interval: "15s"
//
// Use NewTestTelemetry in tests for in-memory span and metric capture.
package telemetry
