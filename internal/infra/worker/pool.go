package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/logger"
)

var (
	ErrQueueFull  = errors.New("fila de conversões cheia")
	ErrPoolClosed = errors.New("pool de conversões encerrado")
)

type ConversionSender interface {
	Execute(ctx context.Context, provider string, input entity.ConversionInput) (*entity.DispatchResult, error)
}

// Pool executa jobs de conversão em background com fila limitada.
// Enqueue nunca bloqueia: fila cheia descarta o job.
type Pool struct {
	sender      ConversionSender
	jobs        chan entity.ConversionJob
	concurrency int
	log         *zap.SugaredLogger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewPool(sender ConversionSender, concurrency, queueSize int, log *zap.SugaredLogger) *Pool {
	if concurrency <= 0 {
		concurrency = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Pool{
		sender:      sender,
		jobs:        make(chan entity.ConversionJob, queueSize),
		concurrency: concurrency,
		log:         logger.OrNop(log),
	}
}

// Start sobe os workers. ctx é usado nas chamadas HTTP dos jobs.
func (p *Pool) Start(ctx context.Context) {
	p.log.Infof("🕒 Pool de conversões iniciado (%d workers, fila %d)", p.concurrency, cap(p.jobs))

	for i := 0; i < p.concurrency; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.process(ctx, job)
			}
		}()
	}
}

func (p *Pool) Enqueue(_ context.Context, job entity.ConversionJob) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown para de aceitar jobs e espera a fila esvaziar.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()

	p.wg.Wait()
	p.log.Info("⚠️ Pool de conversões encerrado")
}

func (p *Pool) process(ctx context.Context, job entity.ConversionJob) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Errorw("❌ Pânico ao despachar conversão", "provider", job.Provider, "panic", r)
		}
	}()

	result, err := p.sender.Execute(ctx, job.Provider, job.Input)
	if err != nil {
		p.log.Errorw("❌ Erro ao despachar conversão", "provider", job.Provider, "error", err)
		return
	}
	if !result.Success {
		p.log.Debugw("Conversão não enviada", "provider", job.Provider, "event_id", result.EventID)
	}
}
