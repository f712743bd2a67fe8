package kafka

import (
	"testing"
	"time"

	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
)

func newTestEvent() *ConversationEvent {
	return &ConversationEvent{
		ConversationID: 42,
		UserID:         7,
		Role:           "user",
		Content:        "hello",
		Timestamp:      time.Now().UTC(),
	}
}

func TestSendEvent(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageAndSucceed()

	p := &Producer{producer: mockProducer, topic: "conversation-messages"}
	defer p.Close()

	assert.NoError(t, p.SendEvent(newTestEvent()))
}

func TestSendEventAfterClose(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)

	p := &Producer{producer: mockProducer, topic: "conversation-messages"}
	assert.NoError(t, p.Close())
	// 重复关闭安全
	assert.NoError(t, p.Close())

	// 关闭后的发送返回错误而不是竞争已关闭的连接
	assert.Error(t, p.SendEvent(newTestEvent()))
}

func TestSendEventUninitialized(t *testing.T) {
	var p *Producer
	assert.Error(t, p.SendEvent(newTestEvent()))
	assert.NoError(t, p.Close())
}

func TestSendConversationMessageWithoutProducer(t *testing.T) {
	globalProducer = nil
	// Kafka未启用时为空操作
	assert.NoError(t, SendConversationMessage(42, 7, "user", "hello", time.Now().UTC()))
}
