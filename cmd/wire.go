package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/edubot/edubot/internal/auth"
	"github.com/edubot/edubot/internal/chat"
	"github.com/edubot/edubot/internal/config"
	"github.com/edubot/edubot/internal/history"
	"github.com/edubot/edubot/internal/llm"
	"github.com/edubot/edubot/internal/lock"
	"github.com/edubot/edubot/internal/logger"
	"github.com/edubot/edubot/internal/mcq"
	"github.com/edubot/edubot/internal/store"
)

// services is everything a chat front end needs, built from one Config.
type services struct {
	backend store.Backend
	locker  lock.Locker
	redis   *lock.Redis
	chat    *chat.Controller
	history *history.Service
	auth    *auth.Service
}

// buildServices opens the store and lock, then wires the model provider,
// question generator and controller on top.
func buildServices(ctx context.Context, cfg config.Config, log *logger.Logger) (*services, error) {
	backend, err := store.OpenBackend(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	svc := &services{backend: backend}

	if cfg.Redis.Addr != "" {
		r, err := lock.NewRedis(ctx, lock.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.LockTTL,
		}, log)
		if err != nil {
			backend.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		svc.redis = r
		svc.locker = r
	} else {
		svc.locker = lock.NewLocal()
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, backend.EventRepo(), log)
	if err != nil {
		svc.Close()
		return nil, err
	}

	gen := mcq.New(provider, mcq.DefaultConfig(), log.With("component", "mcq"))
	machine := chat.NewMachine(provider, gen, chat.MachineOptions{
		Guidance:    chat.FileGuidance{Path: cfg.Chat.GuidanceFile},
		MaxAttempts: cfg.Chat.MCQMaxAttempts,
		Log:         log.With("component", "chat"),
	})

	svc.chat = chat.NewController(backend.SessionRepo(), svc.locker, machine, cfg.Chat.LockWait, log.With("component", "controller"))
	svc.history = history.New(backend.SessionRepo(), svc.locker, cfg.Chat.LockWait)
	svc.auth = auth.New(backend.UserRepo(), cfg.Auth.JWTSecret)
	return svc, nil
}

// Close releases the lock backend and the store.
func (s *services) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	errs = append(errs, s.backend.Close())
	return errors.Join(errs...)
}
