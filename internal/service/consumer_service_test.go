package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebookrag/internal/dto"
	"notebookrag/pkg/apperror"
)

// recordingDocumentService records ProcessFile calls and replies per the
// scripted error.
type recordingDocumentService struct {
	IDocumentService

	mu       sync.Mutex
	err      error
	received []uuid.UUID
}

func (d *recordingDocumentService) ProcessFile(_ context.Context, fileId uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.received = append(d.received, fileId)
	return d.err
}

func (d *recordingDocumentService) calls() []uuid.UUID {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]uuid.UUID, len(d.received))
	copy(out, d.received)
	return out
}

func newConsumerFixture(t *testing.T, docs IDocumentService) (*gochannel.GoChannel, IPublisherService) {
	t.Helper()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	consumer := NewConsumerService(pubSub, "PROCESS_NOTEBOOK_FILE", docs, nopLogger{})
	require.NoError(t, consumer.Consume(context.Background()))

	return pubSub, NewPublisherService("PROCESS_NOTEBOOK_FILE", pubSub)
}

func waitFor(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestConsumerDeliversFileIdToDocumentService(t *testing.T) {
	docs := &recordingDocumentService{}
	_, publisher := newConsumerFixture(t, docs)

	fileId := uuid.New()
	payload, err := json.Marshal(dto.PublishProcessFileMessage{FileId: fileId})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(context.Background(), payload))

	waitFor(t, func() bool { return len(docs.calls()) == 1 })
	assert.Equal(t, fileId, docs.calls()[0])
}

func TestConsumerAcksInvalidPayload(t *testing.T) {
	docs := &recordingDocumentService{}
	_, publisher := newConsumerFixture(t, docs)

	require.NoError(t, publisher.Publish(context.Background(), []byte("not json")))

	// A valid message after the garbage proves the subscriber kept going.
	payload, err := json.Marshal(dto.PublishProcessFileMessage{FileId: uuid.New()})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(context.Background(), payload))

	waitFor(t, func() bool { return len(docs.calls()) == 1 })
}

func TestConsumerAcksVanishedFile(t *testing.T) {
	docs := &recordingDocumentService{err: apperror.NotFound("file gone")}
	_, publisher := newConsumerFixture(t, docs)

	payload, err := json.Marshal(dto.PublishProcessFileMessage{FileId: uuid.New()})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(context.Background(), payload))

	waitFor(t, func() bool { return len(docs.calls()) == 1 })

	// No redelivery after an acked not-found.
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, docs.calls(), 1)
}

func TestConsumerNacksTransientFailure(t *testing.T) {
	docs := &recordingDocumentService{err: errors.New("embedding service down")}
	_, publisher := newConsumerFixture(t, docs)

	payload, err := json.Marshal(dto.PublishProcessFileMessage{FileId: uuid.New()})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(context.Background(), payload))

	waitFor(t, func() bool { return len(docs.calls()) >= 1 })
}
