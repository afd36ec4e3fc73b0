package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"notebookrag/internal/dto"
	"notebookrag/internal/pkg/logger"
	"notebookrag/pkg/apperror"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the file-processing topic and ingests one file
// per message through the document service.
type consumerService struct {
	pubSub          *gochannel.GoChannel
	topicName       string
	documentService IDocumentService
	log             logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	documentService IDocumentService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:          pubSub,
		topicName:       topicName,
		documentService: documentService,
		log:             log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishProcessFileMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("ConsumerService", "failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack invalid messages to prevent infinite retry
		msg.Ack()
		return
	}

	if err := cs.documentService.ProcessFile(ctx, payload.FileId); err != nil {
		if apperror.IsNotFound(err) {
			// File or notebook deleted between publish and consume. Ack.
			cs.log.Warn("ConsumerService", "file vanished before processing", map[string]interface{}{
				"file_id": payload.FileId.String(),
			})
			msg.Ack()
			return
		}
		cs.log.Error("ConsumerService", "failed to process file", map[string]interface{}{
			"file_id": payload.FileId.String(),
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
