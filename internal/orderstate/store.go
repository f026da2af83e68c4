package orderstate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
	"voidwebsite/internal/models"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrSetNotFound   = errors.New("order set not found")
	ErrInvalidStatus = errors.New("invalid order status")
)

const (
	orderKeyPrefix = "order:"
	setKeyPrefix   = "set:"
)

// OrderRepository is the primary store the Store persists orders to.
type OrderRepository interface {
	Upsert(ctx context.Context, order *models.Order) error
	GetAll(ctx context.Context) ([]models.Order, error)
	Delete(ctx context.Context, id string) error
}

type SetRepository interface {
	Save(ctx context.Context, set *models.OrderSet) error
	GetAll(ctx context.Context) ([]models.OrderSet, error)
	Delete(ctx context.Context, id string) error
}

// Mirror is the local copy of the store kept next to the primary. It also
// holds the queue of keys whose primary write failed.
type Mirror interface {
	SaveOrder(ctx context.Context, order models.Order) error
	DeleteOrder(ctx context.Context, id string) error
	LoadOrders(ctx context.Context) ([]models.Order, error)
	SaveSet(ctx context.Context, set models.OrderSet) error
	DeleteSet(ctx context.Context, id string) error
	LoadSets(ctx context.Context) ([]models.OrderSet, error)
	MarkPending(ctx context.Context, key string) error
	ClearPending(ctx context.Context, key string) error
	Pending(ctx context.Context) ([]string, error)
}

type Options struct {
	PersistTimeout time.Duration
	Logger         *slog.Logger
}

// Store owns the order State. Every change goes through Reduce, is copied
// to the mirror and then written to the primary. A failed primary write
// does not undo the change; the key is queued for the Reconciler instead.
type Store struct {
	mu    sync.RWMutex
	state State

	// writeMu serializes reduce and mirror steps. Primary writes run after
	// it is released.
	writeMu sync.Mutex

	orders         OrderRepository
	sets           SetRepository
	mirror         Mirror
	persistTimeout time.Duration
	log            *slog.Logger

	// pendingMu guards the reconcile queue and the per-key write versions.
	pendingMu sync.Mutex
	pending   map[string]struct{}
	versions  map[string]uint64
}

func NewStore(orders OrderRepository, sets SetRepository, mirror Mirror, opts Options) *Store {
	if opts.PersistTimeout <= 0 {
		opts.PersistTimeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Store{
		orders:         orders,
		sets:           sets,
		mirror:         mirror,
		persistTimeout: opts.PersistTimeout,
		log:            opts.Logger.With("component", "orderstate"),
		pending:        make(map[string]struct{}),
		versions:       make(map[string]uint64),
	}
}

// Load hydrates the store from the primary and the mirror. Orders and sets
// found only in the mirror are kept and queued for reconciliation. For keys
// still queued from an earlier run the mirror is authoritative: its copy
// replaces the primary's, and a key the mirror no longer holds is a delete
// the primary never saw. A primary failure is tolerated when the mirror can
// serve the state.
func (s *Store) Load(ctx context.Context) error {
	primaryOrders, primaryErr := s.orders.GetAll(ctx)
	var primarySets []models.OrderSet
	if primaryErr == nil {
		primarySets, primaryErr = s.sets.GetAll(ctx)
	}

	mirrorOrders, ordersErr := s.mirror.LoadOrders(ctx)
	if ordersErr != nil {
		s.log.Warn("mirror orders unavailable", "error", ordersErr)
	}
	mirrorSets, setsErr := s.mirror.LoadSets(ctx)
	if setsErr != nil {
		s.log.Warn("mirror sets unavailable", "error", setsErr)
	}
	pending := make(map[string]struct{})
	if ordersErr == nil && setsErr == nil {
		keys, err := s.mirror.Pending(ctx)
		if err != nil {
			s.log.Warn("failed to read mirror queue", "error", err)
		}
		for _, key := range keys {
			pending[key] = struct{}{}
		}
	}

	if primaryErr != nil {
		if len(mirrorOrders) == 0 && len(mirrorSets) == 0 {
			return fmt.Errorf("failed to load orders: %w", primaryErr)
		}
		s.log.Error("primary unavailable, hydrating from mirror", "error", primaryErr)
	}

	var queued []string
	orders := mergeRecords(primaryOrders, mirrorOrders, orderKeyPrefix, pending,
		func(o models.Order) string { return o.ID }, &queued)
	sortNewestFirst(orders)
	sets := mergeRecords(primarySets, mirrorSets, setKeyPrefix, pending,
		func(set models.OrderSet) string { return set.ID }, &queued)

	state := Reduce(State{}, Hydrate{Orders: orders, Sets: sets})

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	for _, key := range queued {
		s.log.Info("mirror-only record queued for reconcile", "key", key)
		s.queue(ctx, key)
	}
	for _, o := range state.Orders {
		if err := s.mirror.SaveOrder(ctx, o); err != nil {
			s.log.Warn("mirror write failed", "order_id", o.ID, "error", err)
		}
	}
	for _, set := range state.Sets {
		if err := s.mirror.SaveSet(ctx, set); err != nil {
			s.log.Warn("mirror write failed", "set_id", set.ID, "error", err)
		}
	}

	s.log.Info("order store loaded", "orders", len(state.Orders), "sets", len(state.Sets),
		"pending", len(pending)+len(queued))
	return nil
}

// mergeRecords overlays the mirror on the primary. Mirror-only records are
// added and their keys appended to queued. A pending key takes the mirror's
// copy, or drops the record when the mirror has none.
func mergeRecords[T any](primary, mirrored []T, prefix string, pending map[string]struct{}, id func(T) string, queued *[]string) []T {
	fromMirror := make(map[string]T, len(mirrored))
	for _, r := range mirrored {
		fromMirror[id(r)] = r
	}

	out := make([]T, 0, len(primary)+len(mirrored))
	known := make(map[string]struct{}, len(primary))
	for _, r := range primary {
		key := id(r)
		known[key] = struct{}{}
		if _, queuedKey := pending[prefix+key]; !queuedKey {
			out = append(out, r)
			continue
		}
		if m, ok := fromMirror[key]; ok {
			out = append(out, m)
		}
	}
	for _, r := range mirrored {
		key := id(r)
		if _, ok := known[key]; ok {
			continue
		}
		out = append(out, r)
		if _, queuedKey := pending[prefix+key]; !queuedKey {
			*queued = append(*queued, prefix+key)
		}
	}
	return out
}

// AddOrder inserts or replaces the order.
func (s *Store) AddOrder(ctx context.Context, order models.Order) (models.Order, error) {
	if order.ID == "" {
		return models.Order{}, errors.New("order id is required")
	}
	if order.Status == "" {
		order.Status = models.OrderPending
	}
	if !order.Status.Valid() {
		return models.Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, order.Status)
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = models.Now()
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = order.CreatedAt
	}

	s.writeMu.Lock()
	s.apply(AddOrder{Order: order})
	s.mirrorOrder(ctx, order)
	writes := []primaryWrite{s.orderWrite(order)}
	s.writeMu.Unlock()

	s.persist(ctx, writes)
	return order.Clone(), nil
}

// UpdateOrderStatus sets the status of a known order. Any label may follow
// any other; moves back along the lifecycle are logged.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	status = models.OrderStatus(strings.ToLower(strings.TrimSpace(string(status))))
	if !status.Valid() {
		return models.Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.writeMu.Lock()
	current, ok := s.snapshot().Order(id)
	if !ok {
		s.writeMu.Unlock()
		return models.Order{}, ErrOrderNotFound
	}
	if current.Status.IsBackward(status) {
		s.log.Warn("order status moved backwards",
			"order_id", id, "from", current.Status, "to", status)
	}
	next := s.apply(UpdateStatus{ID: id, Status: status, UpdatedAt: models.Now()})
	order, _ := next.Order(id)
	s.mirrorOrder(ctx, order)
	writes := []primaryWrite{s.orderWrite(order)}
	s.writeMu.Unlock()

	s.persist(ctx, writes)
	return order, nil
}

// DeleteOrder removes the order and drops its id from any set. Deleting an
// unknown id succeeds.
func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	s.writeMu.Lock()
	before := s.snapshot()
	next := s.apply(DeleteOrder{ID: id})

	if err := s.mirror.DeleteOrder(ctx, id); err != nil {
		s.log.Warn("mirror delete failed", "order_id", id, "error", err)
	}
	writes := []primaryWrite{s.stage(orderKeyPrefix+id, func(ctx context.Context) error {
		return s.orders.Delete(ctx, id)
	})}
	for _, set := range before.Sets {
		if set.Contains(id) {
			updated, _ := next.Set(set.ID)
			s.mirrorSet(ctx, updated)
			writes = append(writes, s.setWrite(updated))
		}
	}
	s.writeMu.Unlock()

	s.persist(ctx, writes)
	return nil
}

// CreateSet makes a new set holding the given orders. Unknown order ids are
// ignored.
func (s *Store) CreateSet(ctx context.Context, name string, orderIDs []string) (models.OrderSet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.OrderSet{}, errors.New("set name is required")
	}

	s.writeMu.Lock()
	before := s.snapshot()
	set := models.OrderSet{
		ID:        uuid.New().String(),
		Name:      name,
		OrderIDs:  before.liveIDs(orderIDs),
		CreatedAt: models.Now(),
	}
	next := s.apply(CreateSet{Set: set})
	writes := s.syncSets(ctx, before, next, set.ID)
	s.writeMu.Unlock()

	s.persist(ctx, writes)
	created, _ := next.Set(set.ID)
	return created, nil
}

// AssignToSet moves orders into the set, taking them out of any other set.
func (s *Store) AssignToSet(ctx context.Context, setID string, orderIDs []string) (models.OrderSet, error) {
	return s.changeMembers(ctx, setID, func(before State) Action {
		return AssignToSet{SetID: setID, OrderIDs: before.liveIDs(orderIDs)}
	})
}

func (s *Store) RemoveFromSet(ctx context.Context, setID string, orderIDs []string) (models.OrderSet, error) {
	return s.changeMembers(ctx, setID, func(State) Action {
		return RemoveFromSet{SetID: setID, OrderIDs: orderIDs}
	})
}

func (s *Store) changeMembers(ctx context.Context, setID string, action func(State) Action) (models.OrderSet, error) {
	s.writeMu.Lock()
	before := s.snapshot()
	if _, ok := before.Set(setID); !ok {
		s.writeMu.Unlock()
		return models.OrderSet{}, ErrSetNotFound
	}
	next := s.apply(action(before))
	writes := s.syncSets(ctx, before, next, setID)
	s.writeMu.Unlock()

	s.persist(ctx, writes)
	set, _ := next.Set(setID)
	return set, nil
}

// ToggleSet flips the set's expanded flag.
func (s *Store) ToggleSet(ctx context.Context, setID string) (models.OrderSet, error) {
	s.writeMu.Lock()
	if _, ok := s.snapshot().Set(setID); !ok {
		s.writeMu.Unlock()
		return models.OrderSet{}, ErrSetNotFound
	}
	next := s.apply(ToggleSet{ID: setID})
	set, _ := next.Set(setID)
	s.mirrorSet(ctx, set)
	writes := []primaryWrite{s.setWrite(set)}
	s.writeMu.Unlock()

	s.persist(ctx, writes)
	return set, nil
}

// DeleteSet removes the set only; its orders stay in the order list.
func (s *Store) DeleteSet(ctx context.Context, setID string) error {
	s.writeMu.Lock()
	s.apply(DeleteSet{ID: setID})
	if err := s.mirror.DeleteSet(ctx, setID); err != nil {
		s.log.Warn("mirror delete failed", "set_id", setID, "error", err)
	}
	writes := []primaryWrite{s.stage(setKeyPrefix+setID, func(ctx context.Context) error {
		return s.sets.Delete(ctx, setID)
	})}
	s.writeMu.Unlock()

	s.persist(ctx, writes)
	return nil
}

func (s *Store) Orders() []models.Order {
	return cloneOrders(s.snapshot().Orders)
}

func (s *Store) Order(id string) (models.Order, bool) {
	return s.snapshot().Order(id)
}

func (s *Store) Sets() []models.OrderSet {
	return cloneSets(s.snapshot().Sets)
}

func (s *Store) UnsetOrders() []models.Order {
	return s.snapshot().UnsetOrders()
}

func (s *Store) SetOrders(setID string) ([]models.Order, error) {
	state := s.snapshot()
	if _, ok := state.Set(setID); !ok {
		return nil, ErrSetNotFound
	}
	return state.SetOrders(setID), nil
}

func (s *Store) snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) apply(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
	s.log.Debug("action applied", "action", a.actionName())
	return s.state
}

// syncSets mirrors every set whose membership changed between before and
// next, plus the named set, and stages their primary writes.
func (s *Store) syncSets(ctx context.Context, before, next State, setID string) []primaryWrite {
	var writes []primaryWrite
	for _, set := range next.Sets {
		prev, existed := before.Set(set.ID)
		if set.ID != setID && existed && equalIDs(prev.OrderIDs, set.OrderIDs) {
			continue
		}
		s.mirrorSet(ctx, set)
		writes = append(writes, s.setWrite(set))
	}
	return writes
}

func (s *Store) mirrorOrder(ctx context.Context, order models.Order) {
	if err := s.mirror.SaveOrder(ctx, order); err != nil {
		s.log.Warn("mirror write failed", "order_id", order.ID, "error", err)
	}
}

func (s *Store) mirrorSet(ctx context.Context, set models.OrderSet) {
	if err := s.mirror.SaveSet(ctx, set); err != nil {
		s.log.Warn("mirror write failed", "set_id", set.ID, "error", err)
	}
}

// primaryWrite is a staged write of one key at one version.
type primaryWrite struct {
	key     string
	version uint64
	run     func(context.Context) error
}

func (s *Store) orderWrite(order models.Order) primaryWrite {
	return s.stage(orderKeyPrefix+order.ID, func(ctx context.Context) error {
		return s.orders.Upsert(ctx, &order)
	})
}

func (s *Store) setWrite(set models.OrderSet) primaryWrite {
	return s.stage(setKeyPrefix+set.ID, func(ctx context.Context) error {
		return s.sets.Save(ctx, &set)
	})
}

// stage bumps the key's version. It must be called under writeMu, after the
// change it describes has been applied.
func (s *Store) stage(key string, run func(context.Context) error) primaryWrite {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	s.versions[key]++
	return primaryWrite{key: key, version: s.versions[key], run: run}
}

func (s *Store) version(key string) uint64 {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	return s.versions[key]
}

// persist runs the staged writes against the primary, each bounded by the
// persist timeout. It runs outside writeMu so a hung primary stalls only its
// own caller. The caller's cancellation does not abort a write. A key is
// queued when its write fails, or when a newer version was staged while the
// write was in flight, since the two writes may have landed out of order.
func (s *Store) persist(ctx context.Context, writes []primaryWrite) {
	for _, w := range writes {
		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.persistTimeout)
		err := w.run(writeCtx)
		cancel()

		switch {
		case err != nil:
			s.log.Error("primary write failed, queued for reconcile", "key", w.key, "error", err)
			s.queue(ctx, w.key)
		case s.version(w.key) != w.version:
			s.log.Debug("primary write superseded, queued for reconcile", "key", w.key)
			s.queue(ctx, w.key)
		}
	}
}

// queue records key in memory and in the mirror so a restart still sees it.
func (s *Store) queue(ctx context.Context, key string) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	s.pending[key] = struct{}{}

	markCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.persistTimeout)
	defer cancel()
	if err := s.mirror.MarkPending(markCtx, key); err != nil {
		s.log.Warn("failed to queue key in mirror", "key", key, "error", err)
	}
}

func (s *Store) pendingKeys(ctx context.Context) []string {
	seen := make(map[string]struct{})
	var keys []string

	s.pendingMu.Lock()
	for key := range s.pending {
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	s.pendingMu.Unlock()

	mirrored, err := s.mirror.Pending(ctx)
	if err != nil {
		s.log.Warn("failed to read mirror queue", "error", err)
	}
	for _, key := range mirrored {
		if _, ok := seen[key]; !ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// clearPending drops key from the queue unless a write newer than version
// has been staged since. It reports whether the key was cleared.
func (s *Store) clearPending(ctx context.Context, key string, version uint64) bool {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	if s.versions[key] != version {
		return false
	}
	delete(s.pending, key)

	if err := s.mirror.ClearPending(ctx, key); err != nil {
		s.log.Warn("failed to clear mirror queue", "key", key, "error", err)
	}
	return true
}

func (s State) liveIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup || s.indexOfOrder(id) < 0 {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func sortNewestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt.Time)
	})
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
