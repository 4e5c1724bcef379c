package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pagecraft/internal/config"
	"pagecraft/internal/llm"
	"pagecraft/internal/pagestore"
	"pagecraft/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	client, err := buildClient(context.Background(), cfg)
	if err != nil {
		log.Fatalf("init llm client: %v", err)
	}
	defer client.Close()
	log.Printf("llm client: %s", client.Name())

	store := pagestore.NewFromEnv(cfg.StorePath)
	defer store.Close()

	var export *pagestore.ExportStore
	if cfg.Export.Enabled {
		export, err = pagestore.NewExportStore(pagestore.ExportConfig{
			Endpoint:  cfg.Export.Endpoint,
			Region:    cfg.Export.Region,
			AccessKey: cfg.Export.AccessKey,
			SecretKey: cfg.Export.SecretKey,
			Bucket:    cfg.Export.Bucket,
			UseSSL:    cfg.Export.UseSSL,
		})
		if err != nil {
			log.Printf("export store disabled: %v", err)
			export = nil
		}
	}

	app := &App{Store: store, Export: export, LLM: client}
	srv := server.New(cfg.Port, app.Routes())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server: %v", err)
		}
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
}

func buildClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	var base llm.Client
	if cfg.LLM.UseFake {
		base = llm.NewFakeClient()
	} else {
		gemini, err := llm.NewGeminiClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			return nil, err
		}
		base = gemini
	}

	// Retry outermost so every attempt passes the limiter.
	mws := []llm.Middleware{llm.Retry(3, 500*time.Millisecond)}
	if cfg.LLM.RPS > 0 {
		mws = append(mws, llm.RateLimit(cfg.LLM.RPS, 1))
	}
	mws = append(mws, llm.MultiLimitFromEnv("LLM", "GEMINI"))
	mws = append(mws, llm.WithLogging(log.Default()))
	return llm.Wrap(base, mws...), nil
}
