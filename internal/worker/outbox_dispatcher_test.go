//go:build unit

package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"vehicle-care-booking/internal/pkg/clock"
	"vehicle-care-booking/internal/pkg/config"
	"vehicle-care-booking/internal/usecase/shared"
	"vehicle-care-booking/internal/worker"
	workermock "vehicle-care-booking/tests/mock/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OutboxDispatcherTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	queue     *workermock.MockJobQueue
	publisher *workermock.MockPublisher
	recorder  *workermock.MockRecorder
	clock     *clock.MockClock
	cfg       config.Config
}

func (s *OutboxDispatcherTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.queue = workermock.NewMockJobQueue(s.ctrl)
	s.publisher = workermock.NewMockPublisher(s.ctrl)
	s.recorder = workermock.NewMockRecorder(s.ctrl)
	s.clock = clock.NewMockClock(time.Date(2025, 11, 9, 4, 30, 0, 0, time.UTC))
	s.cfg = config.NewTestConfig()
}

func (s *OutboxDispatcherTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OutboxDispatcherTestSuite) dispatcher() *worker.OutboxDispatcher {
	return worker.NewOutboxDispatcher(s.queue, s.publisher, s.recorder, s.clock, s.cfg)
}

// deliverAll stands in for the queue: it hands every job to deliver and counts outcomes.
func deliverAll(jobs ...shared.ClaimedJob) func(context.Context, time.Time, int, func(context.Context, shared.ClaimedJob) error) (int, int, error) {
	return func(ctx context.Context, _ time.Time, _ int, deliver func(context.Context, shared.ClaimedJob) error) (int, int, error) {
		sent, failed := 0, 0
		for _, j := range jobs {
			if err := deliver(ctx, j); err != nil {
				failed++
				continue
			}
			sent++
		}
		return sent, failed, nil
	}
}

func job(topic, payload string) shared.ClaimedJob {
	return shared.ClaimedJob{ID: uuid.New(), Kind: "booking_event", Topic: topic, Payload: []byte(payload), Attempts: 1}
}

func (s *OutboxDispatcherTestSuite) TestRunOnce() {
	ctx := context.Background()

	s.Run("publishes every claimed job", func() {
		s.SetupTest()
		confirmed := job("booking.confirmed", `{"bookingId":"b1"}`)
		cancelled := job("booking.cancelled", `{"bookingId":"b2"}`)

		s.queue.EXPECT().
			Process(gomock.Any(), s.clock.Now(), s.cfg.Outbox.BatchSize, gomock.Any()).
			DoAndReturn(deliverAll(confirmed, cancelled))
		s.publisher.EXPECT().Publish(gomock.Any(), "booking.confirmed", confirmed.Payload).Return(nil)
		s.publisher.EXPECT().Publish(gomock.Any(), "booking.cancelled", cancelled.Payload).Return(nil)
		s.recorder.EXPECT().OutboxDispatched("sent").Times(2)

		sent, err := s.dispatcher().RunOnce(ctx)
		s.Require().NoError(err)
		s.Equal(2, sent)
	})

	s.Run("a failed publish is recorded and left to the queue", func() {
		s.SetupTest()
		ok := job("booking.confirmed", `{}`)
		bad := job("booking.completed", `{}`)

		s.queue.EXPECT().
			Process(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(deliverAll(ok, bad))
		s.publisher.EXPECT().Publish(gomock.Any(), "booking.confirmed", gomock.Any()).Return(nil)
		s.publisher.EXPECT().Publish(gomock.Any(), "booking.completed", gomock.Any()).Return(errors.New("channel closed"))
		s.recorder.EXPECT().OutboxDispatched("sent")
		s.recorder.EXPECT().OutboxDispatched("failed")

		sent, err := s.dispatcher().RunOnce(ctx)
		s.Require().NoError(err)
		s.Equal(1, sent)
	})

	s.Run("empty batch", func() {
		s.SetupTest()
		s.queue.EXPECT().
			Process(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(0, 0, nil)

		sent, err := s.dispatcher().RunOnce(ctx)
		s.Require().NoError(err)
		s.Zero(sent)
	})

	s.Run("queue error", func() {
		s.SetupTest()
		s.queue.EXPECT().
			Process(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(3, 0, errors.New("commit failed"))

		sent, err := s.dispatcher().RunOnce(ctx)
		s.Require().Error(err)
		s.Equal(3, sent)
	})

	s.Run("non-positive batch size falls back to the default", func() {
		s.SetupTest()
		s.cfg.Outbox.BatchSize = 0
		s.queue.EXPECT().
			Process(gomock.Any(), gomock.Any(), 50, gomock.Any()).
			Return(0, 0, nil)

		_, err := s.dispatcher().RunOnce(ctx)
		s.Require().NoError(err)
	})
}

func TestOutboxDispatcherTestSuite(t *testing.T) {
	suite.Run(t, new(OutboxDispatcherTestSuite))
}

func TestOutboxDispatcher_StartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	clk := clock.NewMockClock(time.Now())

	t.Run("rejects an invalid schedule", func(t *testing.T) {
		cfg := config.NewTestConfig()
		cfg.Outbox.Schedule = "every now and then"
		d := worker.NewOutboxDispatcher(workermock.NewMockJobQueue(ctrl), workermock.NewMockPublisher(ctrl), workermock.NewMockRecorder(ctrl), clk, cfg)

		err := d.Start()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid outbox schedule")

		// never started, so stopping is a no-op
		d.Stop(context.Background())
	})

	t.Run("starts and stops on a valid schedule", func(t *testing.T) {
		cfg := config.NewTestConfig()
		cfg.Outbox.Schedule = "@every 1h"
		d := worker.NewOutboxDispatcher(workermock.NewMockJobQueue(ctrl), workermock.NewMockPublisher(ctrl), workermock.NewMockRecorder(ctrl), clk, cfg)

		require.NoError(t, d.Start())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		d.Stop(ctx)
		assert.NoError(t, ctx.Err())
	})
}
