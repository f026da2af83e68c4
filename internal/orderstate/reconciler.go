package orderstate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Reconciler retries primary writes that failed. For each queued key it
// makes the primary match the store: present records are written again,
// absent ones are deleted.
type Reconciler struct {
	flushMu  sync.Mutex
	store    *Store
	interval time.Duration
	log      *slog.Logger
}

var errUnknownKey = errors.New("unknown reconcile key")

type FlushResult struct {
	Synced []string `json:"synced"`
	Failed []string `json:"failed"`
}

func NewReconciler(store *Store, interval time.Duration, logger *slog.Logger) *Reconciler {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		store:    store,
		interval: interval,
		log:      logger.With("component", "reconciler"),
	}
}

// Run flushes the queue every interval until ctx is done.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Info("reconciler started", "interval", r.interval)
	for {
		select {
		case <-ctx.Done():
			r.log.Info("reconciler stopped")
			return
		case <-ticker.C:
			result := r.Flush(ctx)
			if len(result.Synced) > 0 || len(result.Failed) > 0 {
				r.log.Info("reconcile pass finished",
					"synced", len(result.Synced), "failed", len(result.Failed))
			}
		}
	}
}

// Flush makes one pass over the queue. Keys that still fail stay queued, as
// do keys changed by a store mutation while their write was in flight.
func (r *Reconciler) Flush(ctx context.Context) FlushResult {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()

	var result FlushResult
	for _, key := range r.store.pendingKeys(ctx) {
		// The version is read before the snapshot so a change applied in
		// between is never mistaken for the record that was written.
		version := r.store.version(key)
		err := r.sync(ctx, key, r.store.snapshot())
		if errors.Is(err, errUnknownKey) {
			r.log.Warn("dropping unknown reconcile key", "key", key)
			r.store.clearPending(ctx, key, version)
			continue
		}
		if err != nil {
			r.log.Warn("reconcile failed", "key", key, "error", err)
			result.Failed = append(result.Failed, key)
			continue
		}
		if !r.store.clearPending(ctx, key, version) {
			r.log.Debug("record changed during reconcile, keeping it queued", "key", key)
			continue
		}
		result.Synced = append(result.Synced, key)
	}
	return result
}

func (r *Reconciler) sync(ctx context.Context, key string, state State) error {
	ctx, cancel := context.WithTimeout(ctx, r.store.persistTimeout)
	defer cancel()

	switch {
	case strings.HasPrefix(key, orderKeyPrefix):
		id := strings.TrimPrefix(key, orderKeyPrefix)
		if order, ok := state.Order(id); ok {
			return r.store.orders.Upsert(ctx, &order)
		}
		return r.store.orders.Delete(ctx, id)

	case strings.HasPrefix(key, setKeyPrefix):
		id := strings.TrimPrefix(key, setKeyPrefix)
		if set, ok := state.Set(id); ok {
			return r.store.sets.Save(ctx, &set)
		}
		return r.store.sets.Delete(ctx, id)
	}
	return fmt.Errorf("%w: %q", errUnknownKey, key)
}
