package index

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/matst80/center-finder/pkg/content"
	"github.com/matst80/center-finder/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var ErrNotLoaded = errors.New("catalog not loaded")

var (
	itemsGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "centerfinder_items",
		Help: "Items in the current view per collection",
	}, []string{"collection"})
	reloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "centerfinder_reloads_total",
		Help: "Catalog reloads by outcome",
	}, []string{"outcome"})
	reloadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "centerfinder_reload_duration_seconds",
		Help:    "Time spent fetching and deriving a new view",
		Buckets: prometheus.DefBuckets,
	})
)

type SnapshotStore interface {
	LoadSnapshot() (*types.Snapshot, error)
	SaveSnapshot(snapshot *types.Snapshot) error
}

type Status struct {
	Loaded     bool           `json:"loaded"`
	LoadedAt   time.Time      `json:"loadedAt,omitempty"`
	LastReload time.Time      `json:"lastReload,omitempty"`
	LastError  string         `json:"lastError,omitempty"`
	Counts     map[string]int `json:"counts,omitempty"`
}

// Catalog holds the current view. Readers never see a partially loaded view.
type Catalog struct {
	mu         sync.RWMutex
	reloadMu   sync.Mutex
	view       *View
	lastReload time.Time
	lastError  error

	source content.Source
	store  SnapshotStore
	logger *zap.SugaredLogger
}

func NewCatalog(source content.Source, store SnapshotStore, logger *zap.SugaredLogger) *Catalog {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Catalog{source: source, store: store, logger: logger}
}

func (c *Catalog) View() (*View, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.view == nil {
		return nil, ErrNotLoaded
	}
	return c.view, nil
}

func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view != nil
}

// Swap derives a view from the snapshot and makes it current.
func (c *Catalog) Swap(snapshot *types.Snapshot) *View {
	view := NewView(snapshot)
	c.mu.Lock()
	c.view = view
	c.mu.Unlock()
	for name, count := range view.Counts() {
		itemsGauge.WithLabelValues(name).Set(float64(count))
	}
	return view
}

// Restore makes the persisted snapshot current.
func (c *Catalog) Restore() error {
	if c.store == nil {
		return ErrNotLoaded
	}
	snapshot, err := c.store.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}
	c.Swap(snapshot)
	c.logger.Infof("Restored snapshot from %s", snapshot.LoadedAt.Format(time.RFC3339))
	return nil
}

// Reload fetches a new snapshot from the source. When the source fails the
// current view stays, or the persisted snapshot is used before the first load.
func (c *Catalog) Reload(ctx context.Context) error {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	start := time.Now()
	snapshot, err := c.source.Snapshot(ctx)
	reloadDuration.Observe(time.Since(start).Seconds())

	c.mu.Lock()
	c.lastReload = time.Now()
	c.lastError = err
	c.mu.Unlock()

	if err != nil {
		reloadsTotal.WithLabelValues("error").Inc()
		c.logger.Errorf("Failed to load content: %v", err)
		if !c.Loaded() && c.store != nil {
			if restoreErr := c.Restore(); restoreErr != nil {
				c.logger.Warnf("No snapshot to fall back on: %v", restoreErr)
			}
		}
		return fmt.Errorf("reload: %w", err)
	}

	view := c.Swap(snapshot)
	reloadsTotal.WithLabelValues("ok").Inc()
	c.logger.Infof("Loaded %d programs, %d centers, %d memberships and %d events in %v",
		view.Programs.Len(), view.Centers.Len(), view.Memberships.Len(), view.Events.Len(), time.Since(start))

	if c.store != nil {
		if err = c.store.SaveSnapshot(snapshot); err != nil {
			c.logger.Warnf("Failed to persist snapshot: %v", err)
		}
	}
	return nil
}

type invalidator interface {
	Invalidate(ctx context.Context) error
}

// Refresh drops any cached source responses before reloading.
func (c *Catalog) Refresh(ctx context.Context) error {
	if inv, ok := c.source.(invalidator); ok {
		if err := inv.Invalidate(ctx); err != nil {
			c.logger.Warnf("Failed to invalidate content cache: %v", err)
		}
	}
	return c.Reload(ctx)
}

func (c *Catalog) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ret := Status{LastReload: c.lastReload}
	if c.lastError != nil {
		ret.LastError = c.lastError.Error()
	}
	if c.view != nil {
		ret.Loaded = true
		ret.LoadedAt = c.view.LoadedAt
		ret.Counts = c.view.Counts()
	}
	return ret
}
