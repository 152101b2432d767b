// Package logger provides structured logging for leetdl.
//
// It wraps zerolog behind a small interface so components can be handed a
// TestLogger in tests:
//
//	log, err := logger.New(&cfg.Logging)
//	log.WithField("problem", "two-sum").Info("README written")
//	log.WithError(err).Error("listing failed")
//
// Console output uses a colored writer on stderr; when a log file is
// configured, JSON lines are appended to it as well.
package logger
