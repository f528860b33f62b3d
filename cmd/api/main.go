package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aidar/rat-api/internal/app"
	"github.com/aidar/rat-api/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	// Контекст отменяется по Ctrl+C или SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Не удалось создать приложение: %v", err)
	}

	// Подключение к БД, миграции, роутинг
	if err := application.Initialize(ctx); err != nil {
		log.Fatalf("Не удалось инициализировать приложение: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := application.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			log.Printf("Ошибка сервера: %v", err)
			exitCode = 1
		}
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Printf("Не удалось корректно остановить сервер: %v", err)
		exitCode = 1
	}

	if exitCode != 0 {
		cancel()
		os.Exit(exitCode)
	}
}
