package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/kitchen/internal/config"
	"github.com/mamadbah2/kitchen/internal/repository/mongodb"
	"github.com/mamadbah2/kitchen/internal/repository/sheets"
	"github.com/mamadbah2/kitchen/internal/repository/slots"
	"github.com/mamadbah2/kitchen/internal/repository/sqlite"
	"github.com/mamadbah2/kitchen/internal/scheduler"
	"github.com/mamadbah2/kitchen/internal/server/handlers"
	"github.com/mamadbah2/kitchen/internal/server/router"
	exportsvc "github.com/mamadbah2/kitchen/internal/service/export"
	"github.com/mamadbah2/kitchen/internal/service/gateway"
	"github.com/mamadbah2/kitchen/internal/service/kitchen"
	"github.com/mamadbah2/kitchen/internal/service/notify"
	"github.com/mamadbah2/kitchen/pkg/clients/anthropic"
	"github.com/mamadbah2/kitchen/pkg/clients/gemini"
	"github.com/mamadbah2/kitchen/pkg/clients/llm"
	whatsappclient "github.com/mamadbah2/kitchen/pkg/clients/whatsapp"
	"github.com/mamadbah2/kitchen/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level, cfg.Log.Format))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg.Storage, baseLogger.Named("repo"))
	if err != nil {
		baseLogger.Fatal("failed to open slot store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close slot store", zap.Error(err))
		}
	}()

	model, closeModel, err := newModel(ctx, cfg.AI)
	if err != nil {
		baseLogger.Fatal("failed to init ai client", zap.Error(err))
	}
	defer closeModel()
	baseLogger.Info("ai client enabled", zap.String("provider", cfg.AI.Provider))

	ai := gateway.NewService(model, baseLogger.Named("svc.gateway"))
	kitchenSvc := kitchen.NewService(ctx, store, ai, baseLogger.Named("svc.kitchen"))

	var notifier *notify.Service
	if cfg.Notify.Enabled {
		notifier = notify.NewService(newSender(cfg.WhatsApp, baseLogger), true, baseLogger.Named("svc.notify"))
		kitchenSvc.OnInventoryChange(notifier.Observe)
		notifier.Observe(ctx, kitchenSvc.Inventory())

		sched, err := scheduler.NewScheduler(cfg.Notify, kitchenSvc, notifier, baseLogger.Named("scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	} else {
		baseLogger.Warn("expiry notifications disabled")
	}

	var exporter handlers.Exporter
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		exporter = exportsvc.NewService(sheetsRepo, baseLogger.Named("svc.export"))
	}

	// A nil *notify.Service must not become a non-nil interface.
	var notifierPort handlers.Notifier
	if notifier != nil {
		notifierPort = notifier
	}

	kitchenHandler := handlers.NewKitchenHandler(kitchenSvc, exporter, notifierPort, baseLogger.Named("handlers.kitchen"))
	engine := router.New(kitchenHandler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (slots.Store, error) {
	switch cfg.Driver {
	case config.StorageMongoDB:
		return mongodb.NewMongoDBRepository(ctx, cfg.MongoURI, cfg.MongoDB)
	case config.StorageMemory:
		log.Warn("using in-memory storage, state is lost on exit")
		return slots.NewMemoryStore(), nil
	case config.StorageSQLite:
		return sqlite.NewRepository(cfg.SQLitePath, log.Named("sqlite"))
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

func newModel(ctx context.Context, cfg config.AIConfig) (llm.Model, func(), error) {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return anthropic.NewClient(anthropic.Config{APIKey: cfg.AnthropicKey, Model: cfg.AnthropicModel}), func() {}, nil
	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, gemini.Config{
			ProjectID:       cfg.ProjectID,
			Location:        cfg.Location,
			CredentialsFile: cfg.CredentialsFile,
			Model:           cfg.GeminiModel,
		})
		if err != nil {
			return nil, nil, err
		}
		return client, func() { _ = client.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
}

func newSender(cfg config.WhatsAppConfig, log *zap.Logger) notify.Sender {
	if !cfg.Enabled() {
		log.Info("whatsapp not configured, expiry alerts go to the log")
		return notify.NewLogSender(log.Named("alerts"))
	}
	client := whatsappclient.NewClient(whatsappclient.Config{
		AccessToken:   cfg.AccessToken,
		PhoneNumberID: cfg.PhoneNumberID,
		BaseURL:       cfg.BaseURL,
		APIVersion:    cfg.APIVersion,
	})
	return notify.NewWhatsAppSender(client, cfg.Recipient, log.Named("alerts.whatsapp"))
}
