package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/pitchpartner/pitchpartner-backend/api/routes"
	"github.com/pitchpartner/pitchpartner-backend/internal/auth"
	"github.com/pitchpartner/pitchpartner-backend/internal/clubs"
	"github.com/pitchpartner/pitchpartner-backend/internal/inventory"
	"github.com/pitchpartner/pitchpartner-backend/internal/leads"
	"github.com/pitchpartner/pitchpartner-backend/internal/memberships"
	"github.com/pitchpartner/pitchpartner-backend/internal/proposals"
	"github.com/pitchpartner/pitchpartner-backend/internal/sponsors"
	"github.com/pitchpartner/pitchpartner-backend/internal/users"
	"github.com/pitchpartner/pitchpartner-backend/pkg/auth/session"
	"github.com/pitchpartner/pitchpartner-backend/pkg/config"
	"github.com/pitchpartner/pitchpartner-backend/pkg/db"
	"github.com/pitchpartner/pitchpartner-backend/pkg/logger"
	"github.com/pitchpartner/pitchpartner-backend/pkg/metrics"
	"github.com/pitchpartner/pitchpartner-backend/pkg/migrate"
	"github.com/pitchpartner/pitchpartner-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	proposalMetrics := metrics.NewProposalMetrics(registry)

	usersRepo := users.NewRepository(dbClient.DB())
	membershipsRepo := memberships.NewRepository(dbClient.DB())
	clubsRepo := clubs.NewRepository(dbClient.DB())
	leadsRepo := leads.NewRepository(dbClient.DB())
	sponsorsRepo := sponsors.NewRepository(dbClient.DB())
	inventoryRepo := inventory.NewRepository(dbClient.DB())
	proposalsRepo := proposals.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:        usersRepo,
		MembershipsRepo: membershipsRepo,
		SessionManager:  sessionManager,
		JWTConfig:       cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.DefaultRegisterParams(dbClient, cfg.Password))
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	switchService, err := auth.NewSwitchClubService(auth.SwitchClubServiceParams{
		MembershipsRepo: membershipsRepo,
		SessionManager:  sessionManager,
		JWTConfig:       cfg.JWT,
		ClubRepo:        clubsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create switch-club service", err)
		os.Exit(1)
	}

	clubService, err := clubs.NewService(clubsRepo, membershipsRepo, usersRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create club service", err)
		os.Exit(1)
	}

	leadService, err := leads.NewService(leadsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create lead service", err)
		os.Exit(1)
	}

	sponsorService, err := sponsors.NewService(sponsorsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create sponsor service", err)
		os.Exit(1)
	}

	inventoryService, err := inventory.NewService(inventoryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	proposalService, err := proposals.NewService(
		proposalsRepo,
		clubsRepo,
		inventoryRepo,
		leadsRepo,
		sponsorsRepo,
		cfg.Proposals,
		logg,
		proposalMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create proposal service", err)
		os.Exit(1)
	}

	publicService, err := proposals.NewPublicService(
		proposalsRepo,
		clubsRepo,
		redisClient,
		cfg.Proposals,
		logg,
		proposalMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create public proposal service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:           cfg,
		Logger:           logg,
		DB:               dbClient,
		Redis:            redisClient,
		SessionManager:   sessionManager,
		Metrics:          registry,
		MembershipsRepo:  membershipsRepo,
		AuthService:      authService,
		RegisterService:  registerService,
		SwitchService:    switchService,
		ClubService:      clubService,
		LeadService:      leadService,
		SponsorService:   sponsorService,
		InventoryService: inventoryService,
		ProposalService:  proposalService,
		PublicService:    publicService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(ctx, "shutting down on signal "+sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
