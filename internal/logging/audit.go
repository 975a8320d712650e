package logging

import (
	"context"

	"go.uber.org/zap"
)

// Audit results.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

// AuditEvent logs a structured audit record for a profile mutation.
//
//   - action: "create", "update" or "delete"
//   - resourceType: e.g. "profile"
//   - resourceID: identifier of the affected resource, may be empty on failure
//   - result: AuditSuccess or AuditFailure
//   - details: optional extra payload
func AuditEvent(ctx context.Context, action, resourceType, resourceID, result string, details map[string]any) {
	FromContext(ctx).Info("audit event",
		zap.String("audit.action", action),
		zap.String("audit.resource_type", resourceType),
		zap.String("audit.resource_id", resourceID),
		zap.String("audit.result", result),
		zap.Any("audit.details", details),
	)
}
