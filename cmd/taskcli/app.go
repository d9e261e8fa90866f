package main

import (
	"fmt"
	"os"

	"golang.org/x/time/rate"

	"task-manager/client/internal/authapi"
	"task-manager/client/internal/config"
	"task-manager/client/internal/controller"
	"task-manager/client/internal/identity"
	"task-manager/client/internal/logging"
	"task-manager/client/internal/repository"
	"task-manager/client/internal/session"
	"task-manager/client/internal/transport"
)

type app struct {
	cfg   *config.Config
	store session.Store
	repo  *repository.TaskRepository
	list  *controller.ListController
	auth  *authapi.Client
}

// newApp wires the full stack from environment configuration. The memory
// session backend only survives a single invocation; point SESSION_BACKEND at
// redis to stay signed in across commands.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logging.New(cfg.Log.Level, os.Stderr)

	var store session.Store
	switch cfg.Session.Backend {
	case "redis":
		store = session.NewRedisStore(&session.RedisConfig{
			Addr:         cfg.GetRedisAddr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			Key:          cfg.Session.Key,
		})
	default:
		store = session.NewMemoryStore()
	}

	var limiter *rate.Limiter
	if cfg.RateLimit.Enabled {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RateLimit.RequestsPerMin)/60), cfg.RateLimit.BurstSize)
	}

	client := transport.NewClient(transport.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		RateLimit: limiter,
	}, store, log)

	repo := repository.NewTaskRepository(identity.NewResolver(store), client)

	return &app{
		cfg:   cfg,
		store: store,
		repo:  repo,
		list:  controller.NewListController(repo, log),
		auth:  authapi.NewClient(client, store),
	}, nil
}
