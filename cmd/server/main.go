package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"psyfind/internal/chat"
	"psyfind/internal/config"
	"psyfind/internal/dsm"
	"psyfind/internal/llm"
	"psyfind/internal/platform/logger"
	"psyfind/internal/referral"
	"psyfind/internal/report"
	"psyfind/internal/screening"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// 1. Infrastructure
	var db *sql.DB
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			break
		}
		log.Info("waiting for database", "attempt", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Warn("could not connect to database, sessions and results will not persist", "error", err)
		db = nil
	} else {
		log.Info("connected to database")

		m, err := migrate.New(cfg.MigrationsPath, cfg.DatabaseURL)
		if err != nil {
			log.Warn("migration init failed", "error", err)
		} else if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Warn("migration up failed", "error", err)
		} else {
			log.Info("migrations applied")
		}
	}

	// 2. Generation capability
	gen := llm.NewFromConfig(cfg)
	if gen == nil {
		log.Warn("no generation provider available, using deterministic fallbacks")
	}

	// 3. Domain services
	catalog, err := dsm.LoadCatalog()
	if err != nil {
		log.Fatal("failed to load diagnostic catalog", "error", err)
	}
	matcher := dsm.NewMatcher(catalog)

	var sessions chat.SessionStore
	var results screening.ResultRepository
	if db != nil {
		sessions = chat.NewRepository(db)
		results = screening.NewResultRepository(db)
	} else {
		sessions = chat.NewMemoryStore()
	}

	engine := chat.NewEngine(sessions, gen, log, cfg.MessageCap, cfg.ContextWindow)
	composer := report.NewComposer(gen, log)
	roster := referral.LoadRoster(cfg.RosterCSVPath, log)
	referrals := referral.NewMatcher(roster)
	exporter := report.NewPDFExporter()

	svc := screening.NewService(matcher, composer, referrals, engine, sessions, results, exporter, log)
	handler := screening.NewHandler(svc, log)

	// Expired sessions are swept in the background.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			engine.CleanupExpired(context.Background())
		}
	}()

	// 4. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS for frontend
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
			if r.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	screening.RegisterRoutes(r, handler)

	log.Info("server starting", "address", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
