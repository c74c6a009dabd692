package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type fakePublisher struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (f *fakePublisher) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

type fakeAck struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAck) Ack(bool) error { f.acked = true; return nil }
func (f *fakeAck) Nack(_, requeue bool) error {
	f.nacked, f.requeue = true, requeue
	return nil
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Execute(ctx context.Context, provider string, input entity.ConversionInput) (*entity.DispatchResult, error) {
	args := m.Called(ctx, provider, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DispatchResult), args.Error(1)
}

func TestProducer_Enqueue(t *testing.T) {
	pub := &fakePublisher{}
	p := NewProducer(pub)

	job := entity.ConversionJob{Provider: entity.ProviderMeta, Input: entity.ConversionInput{Email: "a@b.com"}}
	require.NoError(t, p.Enqueue(context.Background(), job))

	assert.Equal(t, ExchangeName, pub.exchange)
	assert.Equal(t, RoutingKey, pub.key)
	assert.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)

	var got entity.ConversionJob
	require.NoError(t, json.Unmarshal(pub.msg.Body, &got))
	assert.Equal(t, job, got)
}

func TestProducer_EnqueuePublishError(t *testing.T) {
	p := NewProducer(&fakePublisher{err: errors.New("channel closed")})

	err := p.Enqueue(context.Background(), entity.ConversionJob{Provider: entity.ProviderTikTok})
	assert.ErrorContains(t, err, "channel closed")
}

func TestWorker_Handle(t *testing.T) {
	body, _ := json.Marshal(entity.ConversionJob{Provider: entity.ProviderTikTok, Input: entity.ConversionInput{Phone: "11999998888"}})

	t.Run("ack quando o provedor responde", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Execute", mock.Anything, entity.ProviderTikTok, mock.Anything).
			Return(&entity.DispatchResult{Success: true}, nil).Once()

		ack := &fakeAck{}
		NewWorker(nil, sender, nil).Handle(context.Background(), body, ack)

		assert.True(t, ack.acked)
		assert.False(t, ack.nacked)
		sender.AssertExpectations(t)
	})

	t.Run("rejeicao do provedor tambem e ack", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Execute", mock.Anything, entity.ProviderTikTok, mock.Anything).
			Return(&entity.DispatchResult{Success: false, Message: "invalid pixel"}, nil).Once()

		ack := &fakeAck{}
		NewWorker(nil, sender, nil).Handle(context.Background(), body, ack)

		assert.True(t, ack.acked)
	})

	t.Run("erro inesperado vai para a DLQ", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Execute", mock.Anything, entity.ProviderTikTok, mock.Anything).
			Return(nil, errors.New("settings indisponível")).Once()

		ack := &fakeAck{}
		NewWorker(nil, sender, nil).Handle(context.Background(), body, ack)

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
	})

	t.Run("json invalido vai para a DLQ", func(t *testing.T) {
		sender := new(MockSender)

		ack := &fakeAck{}
		NewWorker(nil, sender, nil).Handle(context.Background(), []byte("{"), ack)

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
		sender.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything)
	})
}
