package utils

import (
	"testing"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/stretchr/testify/assert"
)

func TestMessageTrackerTakeForgets(t *testing.T) {
	tracker := NewMessageTracker()
	topic := "raw-content"
	msg := &kafka.Message{TopicPartition: kafka.TopicPartition{Topic: &topic, Offset: 42}}

	tracker.Track("post-1", msg)

	got, found := tracker.Take("post-1")
	assert.True(t, found)
	assert.Same(t, msg, got)

	_, found = tracker.Take("post-1")
	assert.False(t, found, "a taken message stays forgotten")
}

func TestMessageTrackersAreIndependent(t *testing.T) {
	first := NewMessageTracker()
	second := NewMessageTracker()
	topic := "raw-content"
	msg := &kafka.Message{TopicPartition: kafka.TopicPartition{Topic: &topic}}

	first.Track("post-1", msg)

	_, found := second.Take("post-1")
	assert.False(t, found)
}
