package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/parley-im/parley/internal/bookmarks"
	"github.com/parley-im/parley/internal/config"
	"github.com/parley-im/parley/internal/httpserver"
	"github.com/parley-im/parley/internal/httpserver/deps"
	"github.com/parley-im/parley/internal/logger"
	"github.com/parley-im/parley/internal/redis"
	"github.com/parley-im/parley/internal/sources/seedfile"
	redisstore "github.com/parley-im/parley/internal/store/redis"
	"github.com/parley-im/parley/internal/transport"
	"github.com/parley-im/parley/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	manager     *bookmarks.Manager
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Optional snapshot cache. Without Redis the engine runs the same,
	// just without a warm bookmark list across restarts.
	var redisClient *goredis.Client
	var snapshots bookmarks.Snapshotter
	if cfg.RedisAddr != "" {
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		redisClient = client
		snapshots = redisstore.NewStore(client)
	} else {
		loggerClient.Info("redis not configured, snapshot cache disabled")
	}

	// The dev daemon runs against an in-process private-storage service.
	// The real session layer plugs in here via bookmarks.IQRouter.
	router := transport.NewLoopback()

	collab := devCollaborators(loggerClient, cfg.AccountNick)
	manager := bookmarks.NewManager(router, collab, snapshots, loggerClient)

	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured",
			logger.String("file", cfg.SeedFile))
		loader := seedfile.NewLoader(cfg.SeedFile)
		manager.OnFetchApplied(func() {
			applySeeds(loader, manager, loggerClient)
		})
	}

	d := deps.Deps{
		Logger:    loggerClient,
		StartTime: time.Now(),
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
		GoVersion: version.GoVersion,
		Bookmarks: manager,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		manager:     manager,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting parleyd v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("parleyd %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Warm start from the snapshot, then fetch the authoritative copy.
	if err := a.manager.RestoreSnapshot(ctx); err != nil {
		a.logger.Warn("failed to restore bookmark snapshot", logger.Error(err))
	}
	if err := a.manager.RequestFetch(); err != nil {
		return fmt.Errorf("initial bookmark fetch failed: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.manager.Close()

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ parleyd stopped cleanly")
	return nil
}

// applySeeds adds every seed entry that the fetched document does not
// already contain. Runs after each applied fetch, so local pins survive a
// wiped server document; server records always win over seeds.
func applySeeds(loader *seedfile.Loader, manager *bookmarks.Manager, log logger.Logger) {
	entries, err := loader.Load()
	if err != nil {
		log.Warn("failed to load seed bookmarks", logger.Error(err))
		return
	}

	added := 0
	for _, entry := range entries {
		if manager.Exists(entry.JID) {
			continue
		}
		fields := bookmarks.Fields{Autojoin: &entry.Autojoin}
		if entry.Nick != "" {
			fields.Nick = &entry.Nick
		}
		if entry.Password != "" {
			fields.Password = &entry.Password
		}
		if entry.Name != "" {
			fields.Name = &entry.Name
		}
		if manager.Add(entry.JID, fields) {
			added++
		}
	}
	if added > 0 {
		log.Info("seed bookmarks applied", logger.Int("count", added))
	}
}
