package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"whitted-renderer/internal/preview"
	"whitted-renderer/internal/render"
	"whitted-renderer/internal/scene"
	"whitted-renderer/internal/scenefile"
)

func main() {
	sceneFile := flag.String("scene", "", "Scene file (default: built-in demo room)")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	s, viewCfg := scene.Default(), render.DefaultViewConfig()
	if *sceneFile != "" {
		desc, err := scenefile.Load(*sceneFile)
		if err != nil {
			log.Fatal().Err(err).Msg("load scene")
		}
		if s, viewCfg, err = desc.Build(); err != nil {
			log.Fatal().Err(err).Msg("build scene")
		}
	}
	view, err := render.NewView(viewCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("view")
	}

	srv := &http.Server{Addr: *addr, Handler: preview.NewServer(s, view).Handler()}
	go func() {
		log.Info().Str("addr", *addr).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	got := <-sig
	log.Info().Str("signal", got.String()).Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}
