package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

// NopAuditLogger discards every entry.
type NopAuditLogger struct{}

func (NopAuditLogger) Log(context.Context, AuditLog) {}
