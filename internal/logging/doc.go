// Package logging provides structured logging for consultd.
//
// It wraps Zap with:
//   - Automatic context field injection (trace_id, request.id, session.id)
//   - Encoder-level secret redaction by field name and value pattern
//   - Config-driven JSON or console output
//
// Create a logger from config:
//
//	cfg := logging.NewDefaultConfig()
//	logger, err := logging.NewLogger(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
// Log with context:
//
//	ctx = logging.WithRequestID(ctx, "req_123")
//	logger.Info(ctx, "consultation served", zap.Duration("duration", d))
//
// Secrets are redacted at two layers: the config.Secret domain type, and
// encoder-level field name / pattern filtering. Use the helpers for
// manual redaction:
//
//	logger.Info(ctx, "auth received",
//	    logging.RedactedString("authorization", header))
//
// Logger is safe for concurrent use. Child loggers (With, Named) are
// independent of their parent.
package logging
