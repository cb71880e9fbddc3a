// Package kafka publishes audit events to a Kafka topic with franz-go.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	id "jurify/pkg/domain"
	audit "jurify/pkg/platform/audit"
	"jurify/pkg/platform/audit/store/memory"
)

// record is the JSON value written to the topic.
type record struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Timestamp string `json:"timestamp"`
	UserID    int64  `json:"user_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Role      string `json:"role,omitempty"`
	Email     string `json:"email,omitempty"`
	Action    string `json:"action"`
	Reason    string `json:"reason,omitempty"`
	IP        string `json:"ip,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func toRecord(e audit.Event) record {
	return record{
		ID:        e.ID.String(),
		Category:  string(e.Category),
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339Nano),
		UserID:    int64(e.UserID),
		SessionID: e.SessionID,
		Role:      e.Role,
		Email:     e.Email,
		Action:    e.Action,
		Reason:    e.Reason,
		IP:        e.IP,
		RequestID: e.RequestID,
	}
}

// Decode parses a record value back into an event.
func Decode(value []byte) (audit.Event, error) {
	var r record
	if err := json.Unmarshal(value, &r); err != nil {
		return audit.Event{}, fmt.Errorf("decode audit record: %w", err)
	}
	eventID, err := uuid.Parse(r.ID)
	if err != nil {
		return audit.Event{}, fmt.Errorf("decode audit record id: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, r.Timestamp)
	if err != nil {
		return audit.Event{}, fmt.Errorf("decode audit record timestamp: %w", err)
	}
	return audit.Event{
		ID:        eventID,
		Category:  audit.EventCategory(r.Category),
		Timestamp: ts,
		UserID:    id.UserID(r.UserID),
		SessionID: r.SessionID,
		Role:      r.Role,
		Email:     r.Email,
		Action:    r.Action,
		Reason:    r.Reason,
		IP:        r.IP,
		RequestID: r.RequestID,
	}, nil
}

// Store produces every event to a topic and mirrors it in a local ring so
// ListRecent does not need a consumer.
type Store struct {
	client *kgo.Client
	topic  string
	recent *memory.InMemoryStore
}

// New connects to brokers and makes sure topic exists.
func New(ctx context.Context, brokers []string, topic string) (*Store, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(5*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err := ensureTopic(ctx, kadm.NewClient(client), topic); err != nil {
		client.Close()
		return nil, err
	}
	return &Store{client: client, topic: topic, recent: memory.NewInMemoryStore(0)}, nil
}

func ensureTopic(ctx context.Context, adm *kadm.Client, topic string) error {
	resp, err := adm.CreateTopics(ctx, 1, 1, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, r := range resp.Sorted() {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Append produces the event synchronously, keyed by session so one session's
// events stay ordered within a partition.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	value, err := json.Marshal(toRecord(event))
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}
	key := event.SessionID
	if key == "" {
		key = event.ID.String()
	}
	rec := &kgo.Record{Topic: s.topic, Key: []byte(key), Value: value}
	if err := s.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return s.recent.Append(ctx, event)
}

// ListRecent returns events produced by this process, most recent first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	return s.recent.ListRecent(ctx, limit)
}

func (s *Store) Close() {
	s.client.Close()
}
