package progress_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"gitlab.com/codequest-2025.net/internal/adapter/redis/progress"
	"gitlab.com/codequest-2025.net/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

func newTestPublisher(t *testing.T) (*progress.RedisProgressPublisher, *redis.Client) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return progress.NewRedisProgressPublisher(client, nopLogger{}), client
}

func subscribe(t *testing.T, client *redis.Client, channel string) *redis.PubSub {
	t.Helper()
	sub := client.Subscribe(context.Background(), channel)
	t.Cleanup(func() { sub.Close() })
	if _, err := sub.Receive(context.Background()); err != nil {
		t.Fatalf("subscribe to %s: %v", channel, err)
	}
	return sub
}

func receive(t *testing.T, sub *redis.PubSub) string {
	t.Helper()
	select {
	case msg := <-sub.Channel():
		return msg.Payload
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for message")
		return ""
	}
}

func TestPublishUpdateDeliversProgressEvent(t *testing.T) {
	t.Parallel()
	pub, client := newTestPublisher(t)
	sub := subscribe(t, client, progress.UpdateChannel)

	id := uuid.New()
	event := domain.ExecutionProgressEvent{
		SubmissionID: id,
		ChallengeID:  "challenge-1",
		Status:       domain.SubmissionRunning,
		Progress: domain.ExecutionProgress{
			TotalTests:     3,
			CompletedTests: 1,
			PassedTests:    1,
		},
		CurrentTest: &domain.TestCase{Input: "a", ExpectedOutput: "1", Description: "Test case 1"},
	}
	if err := pub.PublishUpdate(context.Background(), event); err != nil {
		t.Fatalf("publish update failed: %v", err)
	}

	var got domain.ExecutionProgressEvent
	if err := json.Unmarshal([]byte(receive(t, sub)), &got); err != nil {
		t.Fatalf("decode update payload: %v", err)
	}
	if got.SubmissionID != id || got.Status != domain.SubmissionRunning {
		t.Fatalf("unexpected update event: %+v", got)
	}
	if got.Progress.TotalTests != 3 || got.Progress.CompletedTests != 1 {
		t.Fatalf("unexpected progress counters: %+v", got.Progress)
	}
	if got.CurrentTest == nil || got.CurrentTest.Description != "Test case 1" {
		t.Fatalf("expected current test to survive the wire: %+v", got.CurrentTest)
	}
}

func TestPublishCompleteEnvelope(t *testing.T) {
	t.Parallel()
	pub, client := newTestPublisher(t)
	sub := subscribe(t, client, progress.CompleteChannel)

	id := uuid.New()
	result := domain.SubmissionStatus{
		SubmissionID: id,
		Status:       domain.SubmissionCompleted,
		TotalTests:   2,
		PassedTests:  2,
		Score:        100,
	}
	if err := pub.PublishComplete(context.Background(), id, result); err != nil {
		t.Fatalf("publish complete failed: %v", err)
	}

	var envelope struct {
		SubmissionID string                  `json:"submissionId"`
		Type         string                  `json:"type"`
		Result       domain.SubmissionStatus `json:"result"`
		Timestamp    string                  `json:"timestamp"`
	}
	if err := json.Unmarshal([]byte(receive(t, sub)), &envelope); err != nil {
		t.Fatalf("decode completion payload: %v", err)
	}
	if envelope.Type != "execution_complete" {
		t.Fatalf("unexpected event type %q", envelope.Type)
	}
	if envelope.SubmissionID != id.String() {
		t.Fatalf("unexpected submission id %q", envelope.SubmissionID)
	}
	if envelope.Result.Score != 100 || envelope.Result.Status != domain.SubmissionCompleted {
		t.Fatalf("unexpected result payload: %+v", envelope.Result)
	}
	if _, err := time.Parse(time.RFC3339, envelope.Timestamp); err != nil {
		t.Fatalf("timestamp is not RFC3339: %q", envelope.Timestamp)
	}
}

func TestPublishErrorEnvelope(t *testing.T) {
	t.Parallel()
	pub, client := newTestPublisher(t)
	sub := subscribe(t, client, progress.ErrorChannel)

	id := uuid.New()
	if err := pub.PublishError(context.Background(), id, "challenge has no test cases"); err != nil {
		t.Fatalf("publish error failed: %v", err)
	}

	var envelope struct {
		SubmissionID string `json:"submissionId"`
		Type         string `json:"type"`
		Error        string `json:"error"`
		Timestamp    string `json:"timestamp"`
	}
	if err := json.Unmarshal([]byte(receive(t, sub)), &envelope); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if envelope.Type != "execution_error" {
		t.Fatalf("unexpected event type %q", envelope.Type)
	}
	if envelope.SubmissionID != id.String() || envelope.Error != "challenge has no test cases" {
		t.Fatalf("unexpected error envelope: %+v", envelope)
	}
	if _, err := time.Parse(time.RFC3339, envelope.Timestamp); err != nil {
		t.Fatalf("timestamp is not RFC3339: %q", envelope.Timestamp)
	}
}
