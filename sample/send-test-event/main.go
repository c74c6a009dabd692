package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/xavierca1/ligue-leads/internal/config"
	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/database"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/meta"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/tiktok"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

// Dispara um evento de teste usando as credenciais da tabela settings.
// Com test_event_code preenchido o evento aparece só na aba de testes do gerenciador.
func main() {
	provider := flag.String("provider", entity.ProviderMeta, "meta ou tiktok")
	email := flag.String("email", "joao.teste@email.com", "email do lead de teste")
	phone := flag.String("phone", "61999767638", "telefone do lead de teste")
	name := flag.String("name", "Joao Teste da Silva", "nome do lead de teste")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuração inválida: %v", err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Erro ao conectar no banco: %v", err)
	}
	defer db.Close()

	httpClient := &http.Client{Timeout: 15 * time.Second}

	dispatch := usecase.NewDispatchConversionUseCase(
		database.NewSettingsRepository(db),
		nil,
		meta.NewCAPIProvider(cfg.MetaGraphURL, httpClient, nil),
		tiktok.NewEventsProvider(cfg.TikTokAPIURL, httpClient, nil),
	)

	input := entity.ConversionInput{
		Email:     *email,
		Phone:     *phone,
		Name:      *name,
		SourceURL: "https://liguemedicina.com.br/teste",
		UserAgent: "ligue-leads/send-test-event",
	}

	fmt.Printf("🔄 Enviando evento de teste para %s...\n", *provider)
	fmt.Printf("   Nome: %s\n", input.Name)
	fmt.Printf("   Email: %s\n", input.Email)
	fmt.Printf("   Telefone: %s\n\n", input.Phone)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := dispatch.Execute(ctx, *provider, input)
	if err != nil {
		log.Fatalf("❌ Erro ao enviar evento: %v", err)
	}

	if !result.Success {
		fmt.Printf("❌ Evento não aceito (event_id=%s): %s %s %s\n", result.EventID, result.Message, result.Details, result.Error)
		os.Exit(1)
	}

	fmt.Printf("✅ Evento aceito! event_id=%s\n", result.EventID)
	if result.FBTraceID != "" {
		fmt.Printf("   fbtrace_id: %s\n", result.FBTraceID)
	}
}
