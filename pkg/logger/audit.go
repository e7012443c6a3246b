package logger

import (
	"context"
	"log/slog"
	"time"
)

// AuditEvent records the outcome of an admin gate decision. Carries the
// rate-limit partition key and outcome only, never passwords, hashes, or
// session tokens.
type AuditEvent struct {
	EventType     string // "login", "logout", "lockout", "token_check"
	ClientKey     string
	Success       bool
	FailureReason string
}

// AuditLogger provides structured audit logging for the admin gate
type AuditLogger struct {
	logger *slog.Logger
}

func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return &AuditLogger{logger: logger}
}

// LogAuthEvent logs an authentication event at info (success) or warn (failure)
func (al *AuditLogger) LogAuthEvent(event AuditEvent) {
	attrs := []slog.Attr{
		slog.String("audit_type", "auth"),
		slog.String("event_type", event.EventType),
		slog.Bool("success", event.Success),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}

	if event.ClientKey != "" {
		attrs = append(attrs, slog.String("client_key", event.ClientKey))
	}
	if event.FailureReason != "" {
		attrs = append(attrs, slog.String("failure_reason", event.FailureReason))
	}

	level := slog.LevelInfo
	if !event.Success {
		level = slog.LevelWarn
	}
	al.logger.LogAttrs(context.Background(), level, "audit", attrs...)
}
