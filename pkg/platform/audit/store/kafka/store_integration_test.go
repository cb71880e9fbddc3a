//go:build integration

package kafka_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "jurify/pkg/platform/audit"
	"jurify/pkg/platform/audit/store/kafka"
	"jurify/pkg/testutil/containers"
)

const topic = "jurify.audit.test"

type KafkaStoreSuite struct {
	suite.Suite
	broker string
	store  *kafka.Store
}

func TestKafkaStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaStoreSuite))
}

func (s *KafkaStoreSuite) SetupSuite() {
	rp := containers.NewRedpandaContainer(s.T())
	s.broker = rp.Broker

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	store, err := kafka.New(ctx, []string{s.broker}, topic)
	s.Require().NoError(err)
	s.store = store
}

func (s *KafkaStoreSuite) TearDownSuite() {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *KafkaStoreSuite) TestAppendProducesToTopic() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	event := audit.Normalize(audit.Event{
		Action:    string(audit.EventVerificationCompleted),
		SessionID: "sess-42",
		UserID:    42,
	}, time.Now())
	s.Require().NoError(s.store.Append(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().Empty(fetches.Errors())
	records := fetches.Records()
	s.Require().NotEmpty(records)
	s.Equal("sess-42", string(records[0].Key))

	got, err := kafka.Decode(records[0].Value)
	s.Require().NoError(err)
	s.Equal(event.ID, got.ID)
	s.Equal(audit.CategoryCompliance, got.Category)

	recent, err := s.store.ListRecent(ctx, 1)
	s.Require().NoError(err)
	s.Equal(event.ID, recent[0].ID)
}

func (s *KafkaStoreSuite) TestNewIsIdempotentForExistingTopic() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	again, err := kafka.New(ctx, []string{s.broker}, topic)
	s.Require().NoError(err)
	again.Close()
}
