package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/aviniti/estimate-engine/internal/estimate"
	"github.com/aviniti/estimate-engine/internal/httpapi"
	"github.com/aviniti/estimate-engine/internal/report"
	"github.com/aviniti/estimate-engine/internal/session"
	"github.com/aviniti/estimate-engine/internal/transcribe"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", ":8090", "HTTP listen address")
	dbPath := flag.String("db", "", "SQLite path for session checkpoints (empty = in-memory)")
	transcribeURL := flag.String("transcribe-url", "", "Transcription service base URL (empty = audio input disabled)")
	enablePDF := flag.Bool("pdf", false, "Enable PDF report rendering via headless Chromium")
	mock := flag.Bool("mock", false, "Serve sample analyses without calling the model")
	flag.Parse()

	var caller estimate.LLMCaller
	if !*mock {
		gateway, err := estimate.NewAnthropicGatewayFromEnv()
		if err != nil {
			log.Fatal(err)
		}
		caller = gateway
	}

	var store session.Store
	if strings.TrimSpace(*dbPath) != "" {
		sqliteStore, err := session.NewSQLiteStore(*dbPath)
		if err != nil {
			log.Fatal(err)
		}
		defer sqliteStore.Close()
		store = sqliteStore
	} else {
		store = session.NewMemoryStore()
	}

	var transcriber estimate.Transcriber
	if strings.TrimSpace(*transcribeURL) != "" {
		transcriber = transcribe.NewClient(*transcribeURL)
	}

	var renderer *report.ChromiumPDFRenderer
	if *enablePDF {
		renderer = report.NewChromiumPDFRenderer()
	}

	handler := httpapi.NewServer(httpapi.Config{
		Caller:      caller,
		Transcriber: transcriber,
		Store:       store,
		Renderer:    renderer,
	})

	srv := &http.Server{
		Addr:              *addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("starting estimate server (addr=%s, mock=%v, db=%q)", *addr, *mock, *dbPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
