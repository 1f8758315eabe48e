/*
 * @module service/event/publisher
 * @description 数据集事件发布，快照切换或加载失败时向Kafka发送通知
 * @architecture 事件驱动架构 - 发布者
 * @documentReference DESIGN.md
 * @stateFlow 重载回调 -> 构建事件 -> 序列化 -> 写入topic
 * @rules 发布失败只记录日志，不影响快照切换
 * @dependencies github.com/segmentio/kafka-go
 * @refs service/dataset/store.go
 */

package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"hrdash-service/service/dataset"
)

// 事件类型
const (
	EventDatasetReloaded   = "dataset.reloaded"
	EventDatasetLoadFailed = "dataset.load_failed"
)

// DefaultTopic 默认topic
const DefaultTopic = "hrdash.dataset"

// DatasetEvent 数据集事件
type DatasetEvent struct {
	Type            string    `json:"type"`
	Version         string    `json:"version,omitempty"`
	PreviousVersion string    `json:"previous_version,omitempty"`
	SourceType      string    `json:"source_type,omitempty"`
	Source          string    `json:"source,omitempty"`
	Trigger         string    `json:"trigger"`
	RecordCount     int       `json:"record_count"`
	Error           string    `json:"error,omitempty"`
	DurationMs      int64     `json:"duration_ms"`
	Timestamp       time.Time `json:"timestamp"`
}

// NewDatasetEvent 由重载结果构建事件
func NewDatasetEvent(result dataset.ReloadResult) DatasetEvent {
	ev := DatasetEvent{
		Type:       EventDatasetReloaded,
		Trigger:    result.Trigger,
		DurationMs: result.Duration.Milliseconds(),
		Timestamp:  time.Now(),
	}
	if result.Previous != nil {
		ev.PreviousVersion = result.Previous.Version
	}
	if result.Err != nil {
		ev.Type = EventDatasetLoadFailed
		ev.Error = result.Err.Error()
		return ev
	}
	if snap := result.Snapshot; snap != nil {
		ev.Version = snap.Version
		ev.SourceType = snap.SourceType
		ev.Source = snap.Source
		ev.RecordCount = snap.Count
	}
	return ev
}

// Publisher 事件发布者
type Publisher interface {
	Publish(ctx context.Context, ev DatasetEvent) error
	Close() error
}

// MessageWriter kafka.Writer 的最小接口
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher 基于kafka-go的发布者
type KafkaPublisher struct {
	writer  MessageWriter
	timeout time.Duration
}

// NewKafkaPublisher 创建Kafka发布者
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return NewKafkaPublisherWithWriter(writer)
}

// NewKafkaPublisherWithWriter 使用指定writer创建发布者
func NewKafkaPublisherWithWriter(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, timeout: 5 * time.Second}
}

// Publish 发送事件，以快照版本作为消息key
func (p *KafkaPublisher) Publish(ctx context.Context, ev DatasetEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(ev.Version),
		Value: value,
		Time:  ev.Timestamp,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("发送事件失败: %w", err)
	}
	return nil
}

// Close 关闭writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher 未配置Kafka时使用
type NopPublisher struct{}

// Publish 实现 Publisher
func (NopPublisher) Publish(ctx context.Context, ev DatasetEvent) error { return nil }

// Close 实现 Publisher
func (NopPublisher) Close() error { return nil }

// ReloadHook 返回可注册到 dataset.Store 的回调
func ReloadHook(p Publisher) dataset.ReloadHook {
	return func(ctx context.Context, result dataset.ReloadResult) {
		ev := NewDatasetEvent(result)
		if err := p.Publish(context.WithoutCancel(ctx), ev); err != nil {
			slog.Warn("发布数据集事件失败", "type", ev.Type, "error", err)
		}
	}
}
