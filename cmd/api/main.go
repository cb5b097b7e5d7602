package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mdineen/outgo/internal/auth"
	authStore "github.com/mdineen/outgo/internal/auth/store"
	"github.com/mdineen/outgo/internal/config"
	"github.com/mdineen/outgo/internal/database"
	"github.com/mdineen/outgo/internal/expense"
	expenseStore "github.com/mdineen/outgo/internal/expense/store"
	outgoHttp "github.com/mdineen/outgo/internal/http"
	authHandler "github.com/mdineen/outgo/internal/http/auth"
	expenseHandler "github.com/mdineen/outgo/internal/http/expense"
	importHandler "github.com/mdineen/outgo/internal/http/importcsv"
	"github.com/mdineen/outgo/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := storage.Migrate(cfg.ConnectionString()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		authService    = auth.NewService(authStore.New(db), []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
		expenseService = expense.NewService(expenseStore.New(db))
	)

	var (
		authH    = authHandler.NewHandler(authService)
		expenseH = expenseHandler.NewHandler(expenseService)
		importH  = importHandler.NewHandler(expenseService)
	)

	router := outgoHttp.New(authH, expenseH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
