// Package app wires application services to their infrastructure adapters.
package app

import (
	"context"

	"github.com/doeshing/huh-go/internal/application/assist"
	"github.com/doeshing/huh-go/internal/application/diff"
	"github.com/doeshing/huh-go/internal/application/doctor"
	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/infrastructure/ai"
	"github.com/doeshing/huh-go/internal/infrastructure/cache"
	"github.com/doeshing/huh-go/internal/infrastructure/config"
	"github.com/doeshing/huh-go/internal/infrastructure/fileedit"
	"github.com/doeshing/huh-go/internal/infrastructure/history"
	"github.com/doeshing/huh-go/internal/infrastructure/security"
	"github.com/doeshing/huh-go/internal/infrastructure/shell"
	"github.com/doeshing/huh-go/internal/infrastructure/terminal"
	"github.com/doeshing/huh-go/internal/pkg/logger"
	"github.com/doeshing/huh-go/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config          domain.Config
	AssistService   *assist.Service
	ConfigProvider  ports.ConfigProvider
	ConfigLoader    *config.FileLoader
	ShellIntegrator ports.ShellIntegrator
	HistoryReader   ports.ShellHistoryReader
	DoctorService   *doctor.Service
	HistoryStore    *history.SQLiteStore
	Guardrail       *security.Guardrail
	CacheStore      *cache.FileCache
	Logger          *logger.ZapLogger
}

// BuildContainer constructs the dependency graph. configPath overrides the
// config file location when non-empty.
func BuildContainer(ctx context.Context, configPath string, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader(configPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.DefaultLogFile(), verbose)
	if err != nil {
		log = logger.Nop()
	}

	guardrail, err := security.NewGuardrail(cfg.Security.RulesFile)
	if err != nil {
		log.Warn("guardrail rules unreadable, using built-in rules", map[string]interface{}{"error": err.Error()})
		guardrail, err = security.ParseRules(nil)
		if err != nil {
			return nil, err
		}
	}

	historyReader := terminal.NewHistoryReader(cfg.GetDefaultShell())
	paneCapturer := terminal.NewTmuxCapturer(cfg.Context.PaneLines)
	historyStore := history.NewSQLiteStore(history.DefaultPath())
	cacheStore := cache.NewFileCache(cache.DefaultDir(), cfg.GetCacheTTL(), cfg.GetCacheMaxEntries())
	shellInstaller := shell.NewInstaller(log)

	assistService := &assist.Service{
		ConfigProvider:  cfgLoader,
		PaneCapturer:    paneCapturer,
		HistoryReader:   historyReader,
		ProviderFactory: ai.NewFactory(),
		FileEditor:      fileedit.NewEditor(diff.Replay),
		SecurityService: guardrail,
		Cache:           cacheStore,
		Store:           historyStore,
		Logger:          log,
		ResolveAPIKey:   ai.ResolveAPIKey,
	}

	doctorService := &doctor.Service{
		ConfigProvider:  cfgLoader,
		PaneCapturer:    paneCapturer,
		HistoryReader:   historyReader,
		ShellIntegrator: shellInstaller,
		SecurityService: guardrail,
		ResolveAPIKey: func(model domain.ModelDefinition) string {
			return ai.ResolveAPIKey(model, "")
		},
	}

	return &Container{
		Config:          cfg,
		AssistService:   assistService,
		ConfigProvider:  cfgLoader,
		ConfigLoader:    cfgLoader,
		ShellIntegrator: shellInstaller,
		HistoryReader:   historyReader,
		DoctorService:   doctorService,
		HistoryStore:    historyStore,
		Guardrail:       guardrail,
		CacheStore:      cacheStore,
		Logger:          log,
	}, nil
}

// Close releases the history database and flushes the log.
func (c *Container) Close() error {
	err := c.HistoryStore.Close()
	_ = c.Logger.Sync()
	return err
}
