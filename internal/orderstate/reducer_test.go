package orderstate

import (
	"testing"
	"voidwebsite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(id, name string, status models.OrderStatus) models.Order {
	return models.Order{
		ID:           id,
		Status:       status,
		CustomerInfo: models.CustomerInfo{Name: name},
	}
}

func seeded() State {
	s := Reduce(State{}, Hydrate{Orders: []models.Order{
		order("A", "Alice", models.OrderPending),
		order("B", "Bob", models.OrderAccepted),
		order("C", "Cara", models.OrderDelivered),
	}})
	return Reduce(s, CreateSet{Set: models.OrderSet{ID: "s1", Name: "Week 1", OrderIDs: []string{"A", "B"}}})
}

func assertUnsetDisjoint(t *testing.T, s State) {
	t.Helper()
	for _, o := range s.UnsetOrders() {
		for _, set := range s.Sets {
			assert.False(t, set.Contains(o.ID), "order %s is unset but in set %s", o.ID, set.ID)
		}
	}
}

func TestReduce_AddOrderReplacesSameID(t *testing.T) {
	s := Reduce(State{}, AddOrder{Order: order("A", "Alice", models.OrderPending)})
	s = Reduce(s, AddOrder{Order: order("B", "Bob", models.OrderPending)})
	s = Reduce(s, AddOrder{Order: order("A", "Alicia", models.OrderAccepted)})

	require.Len(t, s.Orders, 2)
	a, ok := s.Order("A")
	require.True(t, ok)
	assert.Equal(t, "Alicia", a.CustomerInfo.Name)
	assert.Equal(t, "B", s.Orders[0].ID)
}

func TestReduce_UpdateStatusUnknownIsNoop(t *testing.T) {
	s := seeded()
	next := Reduce(s, UpdateStatus{ID: "missing", Status: models.OrderCanceled})
	assert.Equal(t, s, next)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := seeded()
	_ = Reduce(s, UpdateStatus{ID: "A", Status: models.OrderCanceled})
	_ = Reduce(s, AssignToSet{SetID: "s1", OrderIDs: []string{"C"}})

	a, _ := s.Order("A")
	assert.Equal(t, models.OrderPending, a.Status)
	set, _ := s.Set("s1")
	assert.Equal(t, []string{"A", "B"}, set.OrderIDs)
}

func TestReduce_DeleteOrderCascadesIntoSets(t *testing.T) {
	s := Reduce(seeded(), DeleteOrder{ID: "A"})

	_, ok := s.Order("A")
	assert.False(t, ok)
	set, _ := s.Set("s1")
	assert.Equal(t, []string{"B"}, set.OrderIDs)

	orders := s.SetOrders("s1")
	require.Len(t, orders, 1)
	assert.Equal(t, "B", orders[0].ID)
}

func TestReduce_AssignMovesBetweenSets(t *testing.T) {
	s := Reduce(seeded(), CreateSet{Set: models.OrderSet{ID: "s2", Name: "Week 2"}})
	s = Reduce(s, AssignToSet{SetID: "s2", OrderIDs: []string{"A", "C"}})

	s1, _ := s.Set("s1")
	s2, _ := s.Set("s2")
	assert.Equal(t, []string{"B"}, s1.OrderIDs)
	assert.Equal(t, []string{"A", "C"}, s2.OrderIDs)
	assert.Empty(t, s.UnsetOrders())
	assertUnsetDisjoint(t, s)
}

func TestReduce_CreateSetTakesOrdersFromOtherSets(t *testing.T) {
	s := Reduce(seeded(), CreateSet{Set: models.OrderSet{ID: "s2", Name: "Rush", OrderIDs: []string{"B"}}})

	s1, _ := s.Set("s1")
	s2, _ := s.Set("s2")
	assert.Equal(t, []string{"A"}, s1.OrderIDs)
	assert.Equal(t, []string{"B"}, s2.OrderIDs)
}

func TestReduce_DeleteSetReturnsOrdersToUnset(t *testing.T) {
	s := seeded()
	assert.Len(t, s.UnsetOrders(), 1)

	s = Reduce(s, DeleteSet{ID: "s1"})
	assert.Empty(t, s.Sets)
	assert.Len(t, s.Orders, 3)
	assert.Len(t, s.UnsetOrders(), 3)
}

func TestReduce_ToggleAndRemove(t *testing.T) {
	s := Reduce(seeded(), ToggleSet{ID: "s1"})
	set, _ := s.Set("s1")
	assert.True(t, set.IsExpanded)

	s = Reduce(s, RemoveFromSet{SetID: "s1", OrderIDs: []string{"A"}})
	set, _ = s.Set("s1")
	assert.Equal(t, []string{"B"}, set.OrderIDs)
	assertUnsetDisjoint(t, s)
}

func TestState_SetOrdersSkipsDanglingIDs(t *testing.T) {
	s := State{
		Orders: []models.Order{order("A", "Alice", models.OrderPending)},
		Sets:   []models.OrderSet{{ID: "s1", OrderIDs: []string{"gone", "A"}}},
	}
	orders := s.SetOrders("s1")
	require.Len(t, orders, 1)
	assert.Equal(t, "A", orders[0].ID)
}
