package kafka

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/ecomai/backend-go/internal/logger"
	"go.uber.org/zap"
)

// Producer Kafka生产者
// 发送与关闭可能来自不同goroutine（事件在请求提交后异步发布），
// 用读写锁保证Close后的发送安全失败而不是竞争已关闭的连接
type Producer struct {
	mu       sync.RWMutex
	closed   bool
	producer sarama.SyncProducer
	topic    string
}

// ConversationEvent 对话消息事件
// 每轮完整交互后按消息逐条发布，仅作审计记录，发送失败不影响请求
type ConversationEvent struct {
	ConversationID uint      `json:"conversation_id"`
	UserID         uint      `json:"user_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
}

var globalProducer *Producer

// InitProducer 初始化Kafka生产者
func InitProducer(brokers []string, topic string) error {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Timeout = 10 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return fmt.Errorf("创建Kafka生产者失败: %w", err)
	}

	globalProducer = &Producer{
		producer: producer,
		topic:    topic,
	}

	logger.Info("Kafka生产者初始化成功", zap.Strings("brokers", brokers), zap.String("topic", topic))
	return nil
}

// GetProducer 获取全局生产者实例
func GetProducer() *Producer {
	return globalProducer
}

// Close 关闭生产者，之后的发送返回错误
func (p *Producer) Close() error {
	if p == nil || p.producer == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.producer.Close()
}

// SendEvent 发送对话事件到Kafka
func (p *Producer) SendEvent(event *ConversationEvent) error {
	if p == nil || p.producer == nil {
		return fmt.Errorf("Kafka生产者未初始化")
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return fmt.Errorf("Kafka生产者已关闭")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化消息失败: %w", err)
	}

	kafkaMsg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(fmt.Sprintf("%d-%d", event.UserID, event.ConversationID)),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := p.producer.SendMessage(kafkaMsg)
	if err != nil {
		return fmt.Errorf("发送消息失败: %w", err)
	}

	logger.Debug("对话事件已发送到Kafka",
		zap.Uint("conversation_id", event.ConversationID),
		zap.String("role", event.Role),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset))

	return nil
}

// SendConversationMessage 发布一条对话消息事件
func SendConversationMessage(conversationID, userID uint, role, content string, timestamp time.Time) error {
	p := GetProducer()
	if p == nil {
		return nil // Kafka未启用
	}
	return p.SendEvent(&ConversationEvent{
		ConversationID: conversationID,
		UserID:         userID,
		Role:           role,
		Content:        content,
		Timestamp:      timestamp,
	})
}
