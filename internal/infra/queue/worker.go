package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/logger"
)

// ConversionSender é o DispatchConversionUseCase visto pelo worker.
type ConversionSender interface {
	Execute(ctx context.Context, provider string, input entity.ConversionInput) (*entity.DispatchResult, error)
}

// Acknowledger é o pedaço de amqp.Delivery usado no processamento.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type Worker struct {
	Channel *amqp.Channel
	Sender  ConversionSender
	log     *zap.SugaredLogger
}

func NewWorker(ch *amqp.Channel, sender ConversionSender, log *zap.SugaredLogger) *Worker {
	return &Worker{
		Channel: ch,
		Sender:  sender,
		log:     logger.OrNop(log),
	}
}

// Start consome a fila até o contexto ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	w.log.Infof(" [*] Worker rodando e aguardando na fila '%s'", queueName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("canal do RabbitMQ fechado")
			}
			w.Handle(ctx, d.Body, &d)
		}
	}
}

// Handle processa uma mensagem. Ack quando o provedor respondeu (aceitando ou não);
// Nack sem requeue (vai para a DLQ) para JSON inválido ou erro inesperado.
func (w *Worker) Handle(ctx context.Context, body []byte, ack Acknowledger) {
	var job entity.ConversionJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.log.Errorw("❌ [WORKER] JSON inválido", "error", err)
		ack.Nack(false, false)
		return
	}

	result, err := w.Sender.Execute(ctx, job.Provider, job.Input)
	if err != nil {
		w.log.Errorw("❌ [WORKER] Erro ao despachar conversão", "provider", job.Provider, "error", err)
		ack.Nack(false, false)
		return
	}

	if !result.Success {
		w.log.Debugw("[WORKER] Conversão não enviada", "provider", job.Provider, "event_id", result.EventID)
	}
	ack.Ack(false)
}
