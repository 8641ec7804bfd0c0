package bootstrap

import "context"

// AuditLog is one entry in the audit trail: process lifecycle and employee
// lifecycle events alike.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
