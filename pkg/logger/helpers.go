package logger

import (
	"context"

	"github.com/rs/zerolog"
)

// LogRequest logs one HTTP exchange with a level chosen from its status code
func LogRequest(l Logger, method, url string, statusCode int, durationMs int64) {
	fields := map[string]interface{}{
		"method":      method,
		"url":         url,
		"status_code": statusCode,
		"duration_ms": durationMs,
	}

	switch {
	case statusCode >= 500:
		l.ErrorWithFields("HTTP request server error", fields)
	case statusCode >= 400:
		l.WarnWithFields("HTTP request client error", fields)
	default:
		l.DebugWithFields("HTTP request completed", fields)
	}
}

// LogSolution logs the outcome of one submission download
func LogSolution(l Logger, problem, lang, submissionID, filename string, saved bool, err error) {
	entry := l.WithFields(map[string]interface{}{
		"problem":       problem,
		"lang":          lang,
		"submission_id": submissionID,
	})

	switch {
	case err != nil:
		entry.WithError(err).Error("Solution download failed")
	case saved:
		entry.WithField("file", filename).Info("Solution saved")
	default:
		entry.Warn("Submission code not found, skipping")
	}
}

// LogPhase logs the start or end of a pipeline phase
func LogPhase(l Logger, phase string, fields map[string]interface{}) {
	entry := l.WithField("phase", phase)
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Info("Phase completed")
}

// NewNopLogger creates a logger that discards everything
func NewNopLogger() Logger {
	return &nopLogger{}
}

type nopLogger struct{}

func (n *nopLogger) Debug(msg string)                                          {}
func (n *nopLogger) Info(msg string)                                           {}
func (n *nopLogger) Warn(msg string)                                           {}
func (n *nopLogger) Error(msg string)                                          {}
func (n *nopLogger) WithField(key string, value interface{}) Logger            { return n }
func (n *nopLogger) WithFields(fields map[string]interface{}) Logger           { return n }
func (n *nopLogger) WithError(err error) Logger                                { return n }
func (n *nopLogger) WithContext(ctx context.Context) Logger                    { return n }
func (n *nopLogger) DebugWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) InfoWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) WarnWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) ErrorWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) GetZerolog() *zerolog.Logger                               { return nil }
