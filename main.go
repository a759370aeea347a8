package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"fintrack-backend/config"
	"fintrack-backend/database"
	"fintrack-backend/handlers"
	"fintrack-backend/logging"
	"fintrack-backend/middleware"
	"fintrack-backend/services"
	"fintrack-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	logging.Setup()
	config.Load()

	database.Connect()
	database.ConnectRedis() // optional, won't crash if unavailable

	// Stores
	expenseStore := store.NewGormExpenseStore(database.DB)
	debtLedger := store.NewGormDebtLedger(database.DB)
	participantStore := store.NewGormParticipantStore(database.DB)

	// Services
	throttle := time.Duration(config.AppConfig.DebtThrottleMS) * time.Millisecond
	notifier := services.NewNotificationService(context.Background(), participantStore)
	engine := services.NewDebtAllocationEngine(debtLedger, notifier, throttle)
	recon := services.NewReconciliationService(expenseStore, debtLedger, throttle)
	expenseService := services.NewSplitExpenseService(expenseStore, engine, recon)
	debtService := services.NewDebtService(debtLedger)
	aggregator := services.NewBalanceAggregator(expenseStore, debtLedger, database.Redis,
		time.Duration(config.AppConfig.SummaryCacheTTL)*time.Second)

	h := handlers.New(expenseService, debtService, recon, aggregator, participantStore)

	// Router
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": config.AppConfig.AppName,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		// Split expenses
		api.POST("/expenses", h.CreateExpense)
		api.GET("/expenses", h.GetExpenses)
		api.GET("/expenses/:id", h.GetExpense)
		api.DELETE("/expenses/:id", h.DeleteExpense)

		// Debts
		api.POST("/debts", h.CreateDebt)
		api.GET("/debts", h.GetDebts)
		api.GET("/debts/orphans", h.GetOrphanedDebts)
		api.POST("/debts/:id/paid", h.MarkDebtPaid)
		api.DELETE("/debts/:id", h.DeleteDebt)

		// Balances
		api.GET("/balances/summary", h.GetBalanceSummary)

		// Participants (friends)
		api.POST("/participants", h.CreateParticipant)
		api.GET("/participants", h.GetParticipants)
	}

	addr := "0.0.0.0:" + config.AppConfig.Port
	slog.Info("server starting", "app", config.AppConfig.AppName, "addr", addr)
	if err := r.Run(addr); err != nil {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}
