//go:build integration

package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"lahu/internal/audit"
	id "lahu/pkg/domain"
	"lahu/pkg/testutil/containers"
)

type KafkaSinkSuite struct {
	suite.Suite
	broker string
}

func TestKafkaSinkSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaSinkSuite))
}

func (s *KafkaSinkSuite) SetupSuite() {
	s.broker = containers.GetManager().GetRedpanda(s.T()).Broker
}

func (s *KafkaSinkSuite) TestPublishesKeyedJSONRecords() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	topic := "lahu.audit." + uuid.NewString()

	producer, err := audit.NewKafkaClient([]string{s.broker}, topic)
	s.Require().NoError(err)
	defer producer.Close()
	s.Require().NoError(audit.EnsureTopic(ctx, producer, topic, 1, 1))
	// second call is a no-op
	s.Require().NoError(audit.EnsureTopic(ctx, producer, topic, 1, 1))

	userID := id.UserID(uuid.New())
	sink := audit.NewKafkaSink(producer, topic)
	s.Require().NoError(sink.Append(ctx, audit.Event{
		ID:        uuid.New(),
		Action:    string(audit.EventDonationRecorded),
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}))

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
	s.Require().Len(records, 1)
	s.Equal(userID.String(), string(records[0].Key))

	var got audit.Event
	s.Require().NoError(json.Unmarshal(records[0].Value, &got))
	s.Equal(string(audit.EventDonationRecorded), got.Action)
	s.Equal(userID, got.UserID)
}
