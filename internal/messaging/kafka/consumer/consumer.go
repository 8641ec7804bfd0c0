package consumer

import (
	"context"
	"encoding/json"
	"strings"

	"go-ems/internal/bootstrap"
	"go-ems/internal/events"
	"go-ems/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeEmployeeLifecycle writes one audit entry per lifecycle event and
// commits the offset afterwards. Undecodable messages are committed and
// skipped. It returns when ctx is cancelled.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	auditLogger bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee lifecycle event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		auditLogger.Log(contextutil.WithRequestID(ctx, event.RequestID), auditEntry(event))

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Debug("employee lifecycle event audited",
			zap.String("event_id", event.EventID),
			zap.String("event_type", event.EventType),
			zap.Uint("employee_id", event.EmployeeID),
		)
	}
}

func auditEntry(event events.EmployeeLifecycleEvent) bootstrap.AuditLog {
	meta := map[string]any{
		"event_id":    event.EventID,
		"employee_id": event.EmployeeID,
		"occurred_at": event.OccurredAt,
	}
	if event.EmployeeCode != "" {
		meta["employee_code"] = event.EmployeeCode
	}

	return bootstrap.AuditLog{
		Action:  strings.ToUpper(event.EventType),
		Message: "employee " + strings.TrimPrefix(event.EventType, "employee_"),
		Meta:    meta,
	}
}
