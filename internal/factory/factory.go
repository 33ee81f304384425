package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/gamewarden/internal/async"
	"github.com/mcoot/gamewarden/internal/cache"
	"github.com/mcoot/gamewarden/internal/connections"
	"github.com/mcoot/gamewarden/internal/dependencies/clock"
	"github.com/mcoot/gamewarden/internal/keylock"
	"github.com/mcoot/gamewarden/internal/model"
	"github.com/mcoot/gamewarden/internal/services/freeze"
	"github.com/mcoot/gamewarden/internal/services/history"
	"github.com/mcoot/gamewarden/internal/services/points"
	"github.com/mcoot/gamewarden/internal/services/sanction"
	"github.com/mcoot/gamewarden/internal/storage"
	"github.com/mcoot/gamewarden/internal/storage/memory"
	redisstorage "github.com/mcoot/gamewarden/internal/storage/redis"
	"github.com/mcoot/gamewarden/internal/storage/sqlite"
	"github.com/mcoot/gamewarden/internal/warden"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// DefaultWorkers is the default async pool size
const DefaultWorkers = 8

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Store

	// External dependencies
	Clock clock.Clock

	// In-memory state
	Connections *connections.Registry
	Cache       *cache.ActiveCache

	// Services
	BanManager     *sanction.Manager
	MuteManager    *sanction.Manager
	WarningManager *sanction.Manager
	PointsService  *points.Service
	FreezeService  *freeze.Service
	HistoryService *history.Service

	// Facade
	Warden *warden.Warden
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file path (required if StorageType is "sqlite")
	SQLitePath string
	// Workers sets the async pool size; <= 0 uses DefaultWorkers
	Workers int
	// CacheFreshness controls how long cached active lookups are trusted;
	// <= 0 uses cache.DefaultFreshness
	CacheFreshness time.Duration
	// WaitTimeout bounds synchronous display lookups; <= 0 uses
	// warden.DefaultWaitTimeout
	WaitTimeout time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'sqlite'")
	}

	clk := clock.New()

	return newWithDependencies(store, clk, cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, clk clock.Clock, cfg Config, logger *slog.Logger) *App {
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	registry := connections.New()
	activeCache := cache.New(clk, cfg.CacheFreshness)
	locks := keylock.New()
	pool := async.NewPool(workers, logger)

	banManager := sanction.NewManager(model.KindBan, store, activeCache, locks, clk, logger)
	muteManager := sanction.NewManager(model.KindMute, store, activeCache, locks, clk, logger)
	warningManager := sanction.NewManager(model.KindWarning, store, activeCache, locks, clk, logger)
	pointsService := points.New(store, locks, logger)
	freezeService := freeze.New(registry, clk, logger)
	historyService := history.New(store, clk, logger)

	wrd := warden.New(
		banManager,
		muteManager,
		warningManager,
		pointsService,
		freezeService,
		historyService,
		pool,
		clk,
		cfg.WaitTimeout,
	)

	return &App{
		Storage:        store,
		Clock:          clk,
		Connections:    registry,
		Cache:          activeCache,
		BanManager:     banManager,
		MuteManager:    muteManager,
		WarningManager: warningManager,
		PointsService:  pointsService,
		FreezeService:  freezeService,
		HistoryService: historyService,
		Warden:         wrd,
	}
}

// Close releases resources held by the application, draining in-flight
// asynchronous work first
func (a *App) Close() error {
	a.Warden.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
