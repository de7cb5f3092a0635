package dependency_container

import (
	"context"
	"fmt"
	"os"

	appProfile "github.com/NeuralTrust/AgeLock/pkg/app/profile"
	appRules "github.com/NeuralTrust/AgeLock/pkg/app/rules"
	"github.com/NeuralTrust/AgeLock/pkg/config"
	"github.com/NeuralTrust/AgeLock/pkg/engine"
	handlers "github.com/NeuralTrust/AgeLock/pkg/handlers/http"
	infraCache "github.com/NeuralTrust/AgeLock/pkg/infra/cache"
	"github.com/NeuralTrust/AgeLock/pkg/infra/cache/event"
	"github.com/NeuralTrust/AgeLock/pkg/infra/cache/subscriber"
	"github.com/NeuralTrust/AgeLock/pkg/infra/jwt"
	"github.com/NeuralTrust/AgeLock/pkg/infra/prometheus"
	"github.com/NeuralTrust/AgeLock/pkg/infra/rulestore"
	"github.com/NeuralTrust/AgeLock/pkg/middleware"
	domainProfile "github.com/NeuralTrust/AgeLock/pkg/profile"
	"github.com/NeuralTrust/AgeLock/pkg/rules"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Instance string

	Engine   *engine.Engine
	Profiles *domainProfile.Holder
	Switcher appProfile.Switcher
	Reloader appRules.Reloader

	// Cache and RedisListener are nil when Redis is disabled.
	Cache          infraCache.Client
	RedisListener  infraCache.EventListener
	RedisPublisher infraCache.EventPublisher

	JWTManager          jwt.Manager
	AdminAuthMiddleware middleware.Middleware
	HandlerTransport    handlers.HandlerTransport
	MiddlewareTransport *middleware.Transport
}

func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Instance: uuid.NewString(),
	}

	base, err := loadRuleSet(cfg, logger)
	if err != nil {
		return nil, err
	}
	reg, err := rules.Compile(base)
	if err != nil {
		return nil, fmt.Errorf("compile rules: %w", err)
	}
	opts, err := engineOptions(cfg.Policy)
	if err != nil {
		return nil, err
	}
	c.Engine, err = engine.New(logger, reg, opts, engine.WithObserver(prometheus.NewDecisionObserver()))
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	var redisStore *rulestore.RedisStore
	c.RedisPublisher = infraCache.NoopPublisher{}
	if cfg.Redis.Enabled {
		c.Cache, err = infraCache.NewClient(infraCache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TLS:      cfg.Redis.TLS,
		}, logger)
		if err != nil {
			return nil, err
		}
		channel := infraCache.Channel(cfg.Rules.EventsChannel)
		c.RedisPublisher = infraCache.NewRedisEventPublisher(c.Cache, channel)
		c.RedisListener = infraCache.NewRedisEventListener(logger, c.Cache, event.Registry)
		redisStore = rulestore.NewRedisStore(logger, c.Cache.RedisClient(), cfg.Rules.RedisKey, nil)
	}

	// Local file lists always apply; Redis lists are shared between
	// instances and receive new additions when enabled.
	fileStore := rulestore.NewFileStore(logger, cfg.Rules.SupplementaryDir)
	stores := []rulestore.Store{fileStore}
	var writeStore rulestore.Store = fileStore
	if redisStore != nil {
		stores = append(stores, redisStore)
		writeStore = redisStore
	}

	c.Reloader = appRules.NewReloader(logger, base, c.Engine, stores...)
	domainAdder := appRules.NewDomainAdder(logger, c.Instance, writeStore, c.Reloader, c.RedisPublisher)

	c.Profiles = domainProfile.NewHolder(cfg.Policy.Profile())
	c.Switcher = appProfile.NewSwitcher(logger, c.Instance, c.Profiles, c.Cache, c.RedisPublisher)

	if c.RedisListener != nil {
		infraCache.RegisterEventSubscriber[event.ProfileChangedEvent](
			c.RedisListener,
			subscriber.NewProfileChangedEventSubscriber(logger, c.Instance, c.Profiles),
		)
		infraCache.RegisterEventSubscriber[event.ReloadRulesEvent](
			c.RedisListener,
			subscriber.NewReloadRulesEventSubscriber(logger, c.Instance, c.Reloader),
		)
	}

	c.JWTManager = jwt.NewJwtManager(&cfg.Server)
	if cfg.Server.SecretKey == "" {
		logger.Warn("server.secret_key is not set, admin routes will reject every request")
	}
	c.AdminAuthMiddleware = middleware.NewAdminAuthMiddleware(logger, c.JWTManager)

	c.MiddlewareTransport = middleware.NewTransport(
		middleware.NewPanicRecoverMiddleware(logger),
		middleware.NewRequestIDMiddleware(),
		middleware.NewMetricsMiddleware(),
	)

	c.HandlerTransport = handlers.HandlerTransport{
		// Decisions
		DecideHandler:      handlers.NewDecideHandler(logger, c.Engine, c.Switcher),
		DecideBatchHandler: handlers.NewDecideBatchHandler(logger, c.Engine, c.Switcher),
		ClassifyHandler:    handlers.NewClassifyHandler(logger, c.Engine),
		// Content filter
		FilterTextHandler: handlers.NewFilterTextHandler(logger, c.Engine, c.Switcher),
		FilterURLHandler:  handlers.NewFilterURLHandler(logger, c.Engine, c.Switcher),
		// Rules
		ReloadRulesHandler: handlers.NewReloadRulesHandler(logger, c.Instance, c.Reloader, c.RedisPublisher),
		AddDomainHandler:   handlers.NewAddDomainHandler(logger, domainAdder),
		// Profile
		GetProfileHandler: handlers.NewGetProfileHandler(c.Switcher),
		SetProfileHandler: handlers.NewSetProfileHandler(logger, c.Switcher),

		GetVersionHandler: handlers.NewGetVersionHandler(logger),
	}
	return c, nil
}

// Start merges the supplementary lists, restores the persisted profile and
// subscribes to events from other instances. A failed reload keeps the
// base rules.
func (c *Container) Start(ctx context.Context) {
	if err := c.Reloader.Reload(ctx); err != nil {
		c.Logger.WithError(err).Warn("supplementary rules not applied, serving base rules")
	}
	p := c.Switcher.Restore(ctx)
	c.Logger.WithField("profile", p).Info("age profile active")

	if c.RedisListener != nil {
		go c.RedisListener.Listen(ctx, infraCache.Channel(c.Config.Rules.EventsChannel))
	}
}

func (c *Container) Close() error {
	if c.Cache == nil {
		return nil
	}
	return c.Cache.RedisClient().Close()
}

// loadRuleSet returns the configured rule pack, or the embedded one. The
// kids redirect from configuration replaces the pack's value.
func loadRuleSet(cfg *config.Config, logger *logrus.Logger) (rules.RuleSet, error) {
	var rs rules.RuleSet
	if cfg.Rules.File != "" {
		data, err := os.ReadFile(cfg.Rules.File)
		if err != nil {
			return rules.RuleSet{}, fmt.Errorf("read rule pack: %w", err)
		}
		rs, err = rules.Parse(data)
		if err != nil {
			return rules.RuleSet{}, err
		}
	} else {
		var err error
		rs, err = rules.Default()
		if err != nil {
			logger.WithError(err).Error("embedded rule pack is invalid, using minimal rules")
		}
	}
	if redirect := cfg.Policy.RestrictedPlatform.KidsRedirect; redirect != "" {
		rs.RestrictedPlatform.KidsRedirect = redirect
	}
	return rs, nil
}

func engineOptions(p config.PolicyConfig) (engine.Options, error) {
	thresholds, err := p.ThresholdOverrides()
	if err != nil {
		return engine.Options{}, err
	}
	return engine.Options{
		StrictMode:         p.StrictMode,
		SafeSearch:         p.SafeSearch,
		ContentFiltering:   p.ContentFiltering,
		SocialMediaEnabled: p.SocialMediaEnabled,
		GamingEnabled:      p.GamingEnabled,
		RestrictedPlatform: p.RestrictedPlatform.Enabled,
		BlockedCategories:  p.BlockedCategories,
		Thresholds:         thresholds,
	}, nil
}
