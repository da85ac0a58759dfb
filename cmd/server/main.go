package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpadapter "siteaudit/internal/adapters/http"
	"siteaudit/internal/config"
	"siteaudit/internal/orchestration"
	"siteaudit/internal/ports"
	"siteaudit/internal/report"
	"siteaudit/internal/services/demo"
	"siteaudit/internal/services/geo"
	"siteaudit/internal/services/searchvis"
	"siteaudit/internal/services/seohealth"
	"siteaudit/internal/services/traffic"
)

func main() {
	cfg := config.Load()

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	if cfg.Env == "development" {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	clients := buildClients(cfg, httpClient, log)
	orch := orchestration.New(clients, cfg.ModuleTimeout, log)
	reports := report.NewPDFGenerator(log)

	srv := httpadapter.New(clients, orch, reports, cfg.ConfiguredAPIs(), cfg.CORSOrigins, log)
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()
	log.Info().Str("addr", cfg.ListenAddr).Str("env", cfg.Env).Msg("listening")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	case err := <-errCh:
		log.Fatal().Err(err).Msg("server error")
	}
}

// buildClients assembles the four module clients. A module whose upstream
// credential is absent gets its canned-data stand-in so every endpoint
// stays usable without configuration.
func buildClients(cfg config.Config, httpClient *http.Client, log zerolog.Logger) []ports.ModuleClient {
	var seoClient ports.ModuleClient
	if cfg.PageSpeedAPIKey != "" {
		seoClient = seohealth.New(cfg.PageSpeedAPIKey, httpClient, log)
	} else {
		log.Warn().Msg("PAGESPEED_API_KEY not set, serving demo SEO data")
		seoClient = demo.SEOHealth{}
	}

	searchClient := searchvis.New(cfg.GSCAccessToken, cfg.BingAPIKey, httpClient, log)

	var chats []ports.ChatClient
	geoDemo := false
	if gemini, err := geo.NewGeminiChat(cfg.GeminiAPIKey); err == nil {
		chats = append(chats, gemini)
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, serving scripted gemini responses")
		chats = append(chats, geo.NewScriptedChat("gemini"))
		geoDemo = true
	}
	// The chatgpt platform has no API backend; its responses are always
	// scripted, matching the simulated scraper path.
	chats = append(chats, geo.NewScriptedChat("chatgpt"))
	geoClient := geo.New(chats, cfg.Debug, geoDemo, log)

	return []ports.ModuleClient{
		seoClient,
		searchClient,
		geoClient,
		traffic.New(log),
	}
}
