package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/0xcro3dile/robobob/internal/adapters/arithmetic"
	"github.com/0xcro3dile/robobob/internal/adapters/database"
	"github.com/0xcro3dile/robobob/internal/adapters/lookup"
	"github.com/0xcro3dile/robobob/internal/config"
	"github.com/0xcro3dile/robobob/internal/domain/ports"
	"github.com/0xcro3dile/robobob/internal/domain/usecases"
)

// newProvider builds the knowledge provider selected by the config. The
// returned close function releases it.
func newProvider(c *config.Config, log *zap.Logger) (ports.AnswerProvider, func() error, error) {
	switch c.Lookup.Provider {
	case config.ProviderFile:
		store := lookup.Load(c.Lookup.QuestionsFile, log.Named("lookup"))
		return store, func() error { return nil }, nil
	case config.ProviderDatabase:
		repo, err := database.NewSQLiteRepository(c.Database.Path, log.Named("database"))
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown lookup provider %q", c.Lookup.Provider)
	}
}

// newDispatcher wires the evaluator and the configured provider.
func newDispatcher(c *config.Config, log *zap.Logger) (*usecases.Dispatcher, func() error, error) {
	provider, closeFn, err := newProvider(c, log)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Answer source ready", zap.String("provider", c.Lookup.Provider))
	return usecases.NewDispatcher(arithmetic.NewEvaluator(log.Named("arithmetic")), provider), closeFn, nil
}
