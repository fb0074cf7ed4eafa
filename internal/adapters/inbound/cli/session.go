package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/abdidvp/minimart/internal/adapters/outbound/config"
	"github.com/abdidvp/minimart/internal/adapters/outbound/logging"
	"github.com/abdidvp/minimart/internal/adapters/outbound/sampledata"
	"github.com/abdidvp/minimart/internal/application"
	"github.com/abdidvp/minimart/internal/domain"
)

// session is one process worth of catalog state and the services over it.
type session struct {
	cfg      domain.Config
	logger   *zap.Logger
	catalog  *application.CatalogService
	combos   *application.ComboService
	checkout *application.CheckoutService
}

func openSession(opts *rootOptions) (*session, error) {
	cfg, err := config.New().Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("--log-level: %w", err)
		}
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	var genOpts []sampledata.Option
	if opts.randSeed != 0 {
		genOpts = append(genOpts, sampledata.WithSeed(opts.randSeed))
	}

	cat := application.NewCatalogService(cfg, sampledata.New(genOpts...), logger)
	if opts.seed > 0 {
		if _, err := cat.Regenerate(opts.seed); err != nil {
			return nil, fmt.Errorf("seeding catalog: %w", err)
		}
	}

	return &session{
		cfg:      cfg,
		logger:   logger,
		catalog:  cat,
		combos:   application.NewComboService(cat, cfg, logger),
		checkout: application.NewCheckoutService(cat, logger),
	}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}
