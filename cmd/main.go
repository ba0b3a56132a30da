package main

import (
	"log"
	"net/http"

	"lens-inspector/config"
	telegram "lens-inspector/internal/api"
	"lens-inspector/internal/container"
	"lens-inspector/internal/domain/entity"
	"lens-inspector/internal/infrastructure/report"
	"lens-inspector/internal/infrastructure/storage"
	"lens-inspector/internal/infrastructure/vision"
	"lens-inspector/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	// Создаём хранилище пользователей и анализатор
	userRepo := storage.NewMemoryUserRepository()
	inspector := vision.NewGoCVInspector()
	describer := report.NewTextDescriber()

	// Собираем сервисы приложения
	appContainer := container.New(userRepo, inspector, describer)

	// HTTP API для одношаговой инспекции (если настроен адрес)
	if cfg.HTTPAddr != "" {
		defaults := entity.Params{BlurSize: cfg.BlurSize, Threshold: cfg.Threshold}.Normalize()
		handler := transport.NewHandler(appContainer.InspectionService, defaults)

		go func() {
			log.Printf("HTTP API is listening on %s", cfg.HTTPAddr)
			if err := http.ListenAndServe(cfg.HTTPAddr, handler); err != nil {
				log.Fatalf("HTTP server error: %v", err)
			}
		}()
	}

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	log.Println("Bot is running...")
	if err := bot.Run(); err != nil {
		log.Fatalf("Bot error: %v", err)
	}
}
