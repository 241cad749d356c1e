package service

import (
	"context"
	"encoding/json"
	"time"

	"tg-assist-be/internal/dto"
	"tg-assist-be/internal/entity"
	"tg-assist-be/internal/pkg/logger"
	"tg-assist-be/internal/repository/contract"
	"tg-assist-be/pkg/events"
	pktNats "tg-assist-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// IAuditService consumes bot events from the in-process bus, persists an
// audit trail row per event, and mirrors each event to NATS when configured.
type IAuditService interface {
	Consume(ctx context.Context) error
}

type auditService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logs      contract.SystemLogRepository
	natsPub   *pktNats.Publisher
	logger    logger.ILogger
}

func NewAuditService(
	pubSub *gochannel.GoChannel,
	topicName string,
	logs contract.SystemLogRepository,
	natsPub *pktNats.Publisher,
	log logger.ILogger,
) IAuditService {
	return &auditService{
		pubSub:    pubSub,
		topicName: topicName,
		logs:      logs,
		natsPub:   natsPub,
		logger:    log,
	}
}

func (as *auditService) Consume(ctx context.Context) error {
	messages, err := as.pubSub.Subscribe(ctx, as.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			as.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (as *auditService) processMessage(ctx context.Context, msg *message.Message) {
	var envelope dto.BotEventMessage
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		as.logger.Error("audit", "failed to unmarshal event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid messages would retry forever otherwise
		return
	}

	level := "INFO"
	if envelope.Type == events.TypeWorkflowFailed {
		level = "WARN"
	}

	if as.logs != nil {
		details, _ := json.Marshal(envelope.Payload)
		entry := &entity.SystemLog{
			Id:        uuid.New(),
			Level:     level,
			Module:    "bot",
			Message:   envelope.Type,
			Details:   datatypes.JSON(details),
			CreatedAt: envelope.OccurredAt,
		}
		if err := as.logs.Create(ctx, entry); err != nil {
			as.logger.Error("audit", "failed to persist audit entry", map[string]interface{}{
				"type":  envelope.Type,
				"error": err.Error(),
			})
			msg.Nack()
			return
		}
	}

	if as.natsPub != nil {
		event := events.BaseEvent{
			Type:       envelope.Type,
			Data:       envelope.Payload,
			OccurredAt: envelope.OccurredAt,
		}
		pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := as.natsPub.Publish(pubCtx, event); err != nil {
			as.logger.Warn("audit", "failed to mirror event to NATS", map[string]interface{}{
				"type":  envelope.Type,
				"error": err.Error(),
			})
		}
		cancel()
	}

	msg.Ack()
}
