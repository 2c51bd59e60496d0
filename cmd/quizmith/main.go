package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	api "github.com/quizmith/quizmith/internal/api/http"
	"github.com/quizmith/quizmith/internal/auth"
	authmw "github.com/quizmith/quizmith/internal/auth/middleware"
	"github.com/quizmith/quizmith/internal/config"
	"github.com/quizmith/quizmith/internal/db"
	"github.com/quizmith/quizmith/internal/eventlog"
	"github.com/quizmith/quizmith/internal/logger"
	"github.com/quizmith/quizmith/internal/quiz"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	logger.Init(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db open failed")
	}

	events := eventlog.NewRepo(dbh)
	tokens := authmw.NewTokenService(cfg.AuthSecret, cfg.TokenTTL)
	authSvc := auth.NewService(auth.NewSQLStore(dbh, cfg.DBDriver), tokens, cfg.RespondDelay, events)
	questions := quiz.NewSQLStore(dbh, cfg.DBDriver)

	r := api.NewRouter(authSvc, tokens, questions, events, cfg.CORSOrigins)

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("env", cfg.Env).
		Str("db", cfg.DBDriver).
		Msg("listening")
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
