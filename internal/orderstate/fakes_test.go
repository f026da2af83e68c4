package orderstate

import (
	"context"
	"errors"
	"sync"
	"voidwebsite/internal/models"
)

var errPrimaryDown = errors.New("primary unavailable")

type fakeOrderRepo struct {
	mu      sync.Mutex
	orders  map[string]models.Order
	fail    bool
	block   bool
	deletes []string
	hold    *upsertHold
}

// upsertHold parks one Upsert until release is closed.
type upsertHold struct {
	entered chan struct{}
	release chan struct{}
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]models.Order)}
}

func (r *fakeOrderRepo) setFailing(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = fail
}

// holdNextUpsert makes the next Upsert wait, ignoring its context, until
// the returned hold is released. The write then lands.
func (r *fakeOrderRepo) holdNextUpsert() *upsertHold {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hold = &upsertHold{entered: make(chan struct{}), release: make(chan struct{})}
	return r.hold
}

func (r *fakeOrderRepo) status(id string) models.OrderStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders[id].Status
}

func (r *fakeOrderRepo) err(ctx context.Context) error {
	r.mu.Lock()
	fail, block := r.fail, r.block
	r.mu.Unlock()
	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	if fail {
		return errPrimaryDown
	}
	return nil
}

func (r *fakeOrderRepo) Upsert(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	hold := r.hold
	r.hold = nil
	r.mu.Unlock()
	if hold != nil {
		close(hold.entered)
		<-hold.release
	}

	if err := r.err(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = order.Clone()
	return nil
}

func (r *fakeOrderRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	if err := r.err(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o.Clone())
	}
	return out, nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id string) error {
	if err := r.err(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes = append(r.deletes, id)
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.orders[id]
	return ok
}

type fakeSetRepo struct {
	mu   sync.Mutex
	sets map[string]models.OrderSet
	fail bool
}

func newFakeSetRepo() *fakeSetRepo {
	return &fakeSetRepo{sets: make(map[string]models.OrderSet)}
}

func (r *fakeSetRepo) Save(ctx context.Context, set *models.OrderSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errPrimaryDown
	}
	r.sets[set.ID] = set.Clone()
	return nil
}

func (r *fakeSetRepo) GetAll(ctx context.Context) ([]models.OrderSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errPrimaryDown
	}
	out := make([]models.OrderSet, 0, len(r.sets))
	for _, s := range r.sets {
		out = append(out, s.Clone())
	}
	return out, nil
}

func (r *fakeSetRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errPrimaryDown
	}
	delete(r.sets, id)
	return nil
}

type fakeMirror struct {
	mu      sync.Mutex
	orders  map[string]models.Order
	sets    map[string]models.OrderSet
	pending map[string]struct{}
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{
		orders:  make(map[string]models.Order),
		sets:    make(map[string]models.OrderSet),
		pending: make(map[string]struct{}),
	}
}

func (m *fakeMirror) SaveOrder(ctx context.Context, order models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order.Clone()
	return nil
}

func (m *fakeMirror) DeleteOrder(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.orders, id)
	return nil
}

func (m *fakeMirror) LoadOrders(ctx context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o.Clone())
	}
	return out, nil
}

func (m *fakeMirror) SaveSet(ctx context.Context, set models.OrderSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets[set.ID] = set.Clone()
	return nil
}

func (m *fakeMirror) DeleteSet(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sets, id)
	return nil
}

func (m *fakeMirror) LoadSets(ctx context.Context) ([]models.OrderSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.OrderSet, 0, len(m.sets))
	for _, s := range m.sets {
		out = append(out, s.Clone())
	}
	return out, nil
}

func (m *fakeMirror) MarkPending(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[key] = struct{}{}
	return nil
}

func (m *fakeMirror) ClearPending(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, key)
	return nil
}

func (m *fakeMirror) hasPending(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.pending[key]
	return ok
}

func (m *fakeMirror) Pending(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.pending))
	for k := range m.pending {
		out = append(out, k)
	}
	return out, nil
}
