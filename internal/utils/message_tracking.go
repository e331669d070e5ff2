package utils

import (
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// MessageTracker remembers which Kafka message carried each content ID so
// the offset can be committed once that content's batch is done. Each
// consumer keeps its own tracker; content IDs reappear across topics.
type MessageTracker struct {
	messages sync.Map
}

func NewMessageTracker() *MessageTracker {
	return &MessageTracker{}
}

func (t *MessageTracker) Track(contentID string, msg *kafka.Message) {
	t.messages.Store(contentID, msg)
}

// Take returns and forgets the tracked message.
func (t *MessageTracker) Take(contentID string) (*kafka.Message, bool) {
	msg, ok := t.messages.Load(contentID)
	if !ok {
		return nil, false
	}
	t.messages.Delete(contentID)
	return msg.(*kafka.Message), true
}
