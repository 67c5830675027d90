package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"time"

	"github.com/matst80/center-finder/pkg/common"
	"github.com/matst80/center-finder/pkg/config"
	"github.com/matst80/center-finder/pkg/content"
	"github.com/matst80/center-finder/pkg/eligibility"
	"github.com/matst80/center-finder/pkg/index"
	"github.com/matst80/center-finder/pkg/messaging"
	"github.com/matst80/center-finder/pkg/persistance"
	"github.com/matst80/center-finder/pkg/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var configFile = flag.String("config", os.Getenv("CONFIG_FILE"), "optional yaml config file")

// reloadDebounce lets a burst of CMS publish events settle into one reload.
const reloadDebounce = 2 * time.Second

func newSource(cfg *config.Config, cache content.Cache, db *persistance.Persistance, logger *zap.SugaredLogger) content.Source {
	if cfg.CMS.Endpoint == "" {
		logger.Warnf("No cms endpoint configured, serving %s", db.File)
		return db
	}
	client := content.NewClient(cfg.CMS.Endpoint, cfg.CMS.Timeout, cache, cfg.CMS.CacheTTL)
	return content.NewCMSSource(client)
}

func debugHandler(cfg *config.Config, catalog *index.Catalog, logger *zap.SugaredLogger) *http.ServeMux {
	debugMux := http.NewServeMux()
	debugMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if !catalog.Loaded() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("not ready"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	debugMux.Handle("/metrics", promhttp.Handler())

	if cfg.Profiling {
		logger.Info("Profiling enabled")
		debugMux.HandleFunc("/debug/pprof/", pprof.Index)
		debugMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		debugMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		debugMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		debugMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	return debugMux
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger, err := common.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cache content.Cache = content.NewMemoryCache()
	var selections server.SelectionStore = server.NewMemorySelectionStore(cfg.SessionTTL)
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisCache := content.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		redisClient = redisCache.Client()
		cache = redisCache
		selections = server.NewRedisSelectionStore(redisClient, cfg.SessionTTL)
		logger.Infof("Cms cache and selections stored in redis at %s", cfg.Redis.Addr)
	}

	db := persistance.NewPersistance(cfg.SnapshotFile)
	catalog := index.NewCatalog(newSource(cfg, cache, db, logger), db, logger)
	if err = catalog.Restore(); err != nil {
		logger.Infof("Starting without a persisted snapshot: %v", err)
	}

	srv := server.NewWebServer(catalog, selections, eligibility.NewEstimator(cfg.Eligibility.ApplicationUrl), logger)

	var notifier *messaging.RabbitNotifier
	rabbit := messaging.RabbitConfig{Url: cfg.Rabbit.Url, VHost: cfg.Rabbit.VHost, Prefix: cfg.Rabbit.Prefix}
	if rabbit.Enabled() {
		notifier = messaging.NewRabbitNotifier(rabbit, logger)
		if err = notifier.Connect(); err != nil {
			logger.Errorf("Failed to connect to RabbitMQ, content changes reload locally: %v", err)
			notifier = nil
		}
	}
	if notifier != nil {
		reloads := common.NewQueueHandler[messaging.ContentChanged](ctx, func(events []messaging.ContentChanged) {
			logger.Infof("Reloading after %d content changes", len(events))
			if err := catalog.Refresh(ctx); err != nil {
				logger.Errorf("Reload after content change failed: %v", err)
			}
		}, 0, reloadDebounce)
		if err = notifier.Listen(func(event messaging.ContentChanged) {
			reloads.Add(event)
		}); err != nil {
			logger.Errorf("Failed to listen for content changes: %v", err)
		}
		srv.Notifier = notifier
	}

	go func() {
		if err := catalog.Reload(ctx); err != nil {
			logger.Errorf("Initial load failed: %v", err)
		}
	}()

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       15 * time.Second,
		Write:      30 * time.Second,
		Idle:       60 * time.Second,
		Shutdown:   15 * time.Second,
		Hook:       5 * time.Second,
	})

	common.ListenInBackground(logger, &http.Server{
		Addr:              cfg.DebugListen,
		Handler:           debugHandler(cfg, catalog, logger),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}, "debug server")

	apiServer := common.NewServerWithTimeouts(&http.Server{
		Addr:    cfg.Listen,
		Handler: srv.Handler(),
	}, timeouts)

	common.RunServerWithShutdown(logger, apiServer, "center api", timeouts.Shutdown, timeouts.Hook,
		func(ctx context.Context) error {
			cancel()
			if notifier != nil {
				return notifier.Close()
			}
			return nil
		},
		func(ctx context.Context) error {
			if redisClient != nil {
				return redisClient.Close()
			}
			return nil
		},
	)
}
