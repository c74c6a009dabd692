package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/config"
	"github.com/xavierca1/ligue-leads/internal/infra/database"
	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/meta"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/tiktok"
	"github.com/xavierca1/ligue-leads/internal/infra/logger"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
	"github.com/xavierca1/ligue-leads/internal/infra/worker"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuração inválida: %v", err)
	}

	zl, err := logger.New(logger.Config{
		Environment: cfg.Environment,
		LogLevel:    cfg.LogLevel,
		ServiceName: "ligue-leads",
	})
	if err != nil {
		log.Fatalf("❌ Erro ao criar logger: %v", err)
	}
	defer zl.Sync()
	logg := zl.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Banco
	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		logg.Fatalw("❌ Erro ao conectar no banco", "error", err)
	}
	defer db.Close()

	if cfg.RunMigrations {
		if err := database.RunMigrations(db); err != nil {
			logg.Fatalw("❌ Erro nas migrations", "error", err)
		}
	}

	// 2. Repositórios
	leadRepo := database.NewLeadRepository(db)
	settingsRepo := database.NewSettingsRepository(db)

	// 3. Provedores de conversão e Graph API
	httpClient := &http.Client{Timeout: 15 * time.Second}
	graph := meta.NewGraphClient(cfg.MetaGraphURL, httpClient)
	metaProvider := meta.NewCAPIProvider(cfg.MetaGraphURL, httpClient, logg.Named("meta"))
	tiktokProvider := tiktok.NewEventsProvider(cfg.TikTokAPIURL, httpClient, logg.Named("tiktok"))

	// 4. UseCases
	dispatchUC := usecase.NewDispatchConversionUseCase(settingsRepo, logg, metaProvider, tiktokProvider)
	ingestUC := usecase.NewIngestMetaLeadUseCase(graph, leadRepo, logg)
	stageUC := usecase.NewStageEventUseCase(leadRepo, settingsRepo, dispatchUC)

	// 5. Fila de conversões: RabbitMQ quando configurado, senão pool em memória
	var (
		conversionQueue usecase.ConversionQueue
		broker          handlers.BrokerConn
		pool            *worker.Pool
	)
	if cfg.AMQPURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			logg.Fatalw("❌ Erro ao conectar no RabbitMQ", "error", err)
		}
		defer rabbitMQ.Close()

		conversionQueue = queue.NewProducer(rabbitMQ.Ch)
		broker = rabbitMQ.Conn

		consumer := queue.NewWorker(rabbitMQ.Ch, dispatchUC, logg.Named("worker"))
		go func() {
			if err := consumer.Start(ctx, queue.QueueName); err != nil && !errors.Is(err, context.Canceled) {
				logg.Errorw("❌ Worker RabbitMQ parou", "error", err)
			}
		}()
	} else {
		pool = worker.NewPool(dispatchUC, cfg.WorkerConcurrency, cfg.WorkerQueueSize, logg.Named("worker"))
		// os jobs em andamento terminam mesmo após o sinal; o timeout do http.Client os limita
		pool.Start(context.Background())
		conversionQueue = pool
	}

	captureUC := usecase.NewCaptureLeadUseCase(leadRepo, conversionQueue, logg)

	// 6. Handlers e router
	router := newRouter(routes{
		metaWebhook:    handlers.NewMetaWebhookHandler(settingsRepo, ingestUC, cfg.WebhookMaxBodyBytes, logg),
		conversion:     handlers.NewConversionHandler(dispatchUC, logg),
		lead:           handlers.NewLeadHandler(captureUC, logg),
		crm:            handlers.NewCRMHandler(stageUC, logg),
		health:         handlers.NewHealthHandler(db, broker),
		allowedOrigins: cfg.CORSAllowedOrigins,
		log:            logg.Named("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.Infof("🔥 Server ligue-leads rodando na porta %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatalw("❌ Erro no servidor HTTP", "error", err)
		}
	}()

	<-ctx.Done()
	logg.Info("⚠️ Sinal recebido, encerrando...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Errorw("❌ Erro ao encerrar servidor", "error", err)
	}

	if pool != nil {
		pool.Shutdown()
	}

	logg.Desugar().Info("👋 Servidor encerrado", zap.String("port", cfg.Port))
}
