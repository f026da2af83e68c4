// Package orderstate holds the in-memory order list and order sets shared by
// the admin API. Changes are expressed as typed actions applied by a pure
// reducer; Store wraps the reducer with locking and persistence.
package orderstate

import (
	"voidwebsite/internal/models"
)

type State struct {
	Orders []models.Order
	Sets   []models.OrderSet
}

// Action is one of the typed state changes below.
type Action interface {
	actionName() string
}

type Hydrate struct {
	Orders []models.Order
	Sets   []models.OrderSet
}

// AddOrder inserts the order, replacing any order with the same id in place.
type AddOrder struct {
	Order models.Order
}

// UpdateStatus is a no-op when the id is unknown.
type UpdateStatus struct {
	ID        string
	Status    models.OrderStatus
	UpdatedAt models.Timestamp
}

// DeleteOrder removes the order and its id from every set.
type DeleteOrder struct {
	ID string
}

type CreateSet struct {
	Set models.OrderSet
}

// AssignToSet appends orders to a set, moving them out of any other set.
type AssignToSet struct {
	SetID    string
	OrderIDs []string
}

type RemoveFromSet struct {
	SetID    string
	OrderIDs []string
}

type ToggleSet struct {
	ID string
}

// DeleteSet drops the set; its orders become unset.
type DeleteSet struct {
	ID string
}

func (Hydrate) actionName() string       { return "HYDRATE" }
func (AddOrder) actionName() string      { return "ADD_ORDER" }
func (UpdateStatus) actionName() string  { return "UPDATE_STATUS" }
func (DeleteOrder) actionName() string   { return "DELETE_ORDER" }
func (CreateSet) actionName() string     { return "CREATE_SET" }
func (AssignToSet) actionName() string   { return "ASSIGN_TO_SET" }
func (RemoveFromSet) actionName() string { return "REMOVE_FROM_SET" }
func (ToggleSet) actionName() string     { return "TOGGLE_SET" }
func (DeleteSet) actionName() string     { return "DELETE_SET" }

// Reduce returns the state after applying a. The input state is not
// modified.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Hydrate:
		return State{Orders: cloneOrders(a.Orders), Sets: cloneSets(a.Sets)}

	case AddOrder:
		orders := cloneOrders(s.Orders)
		for i := range orders {
			if orders[i].ID == a.Order.ID {
				orders[i] = a.Order.Clone()
				return State{Orders: orders, Sets: s.Sets}
			}
		}
		// newest first, matching the admin list
		orders = append([]models.Order{a.Order.Clone()}, orders...)
		return State{Orders: orders, Sets: s.Sets}

	case UpdateStatus:
		i := s.indexOfOrder(a.ID)
		if i < 0 {
			return s
		}
		orders := cloneOrders(s.Orders)
		orders[i].Status = a.Status
		orders[i].UpdatedAt = a.UpdatedAt
		return State{Orders: orders, Sets: s.Sets}

	case DeleteOrder:
		orders := make([]models.Order, 0, len(s.Orders))
		for _, o := range s.Orders {
			if o.ID != a.ID {
				orders = append(orders, o.Clone())
			}
		}
		sets := cloneSets(s.Sets)
		for i := range sets {
			sets[i].OrderIDs = without(sets[i].OrderIDs, a.ID)
		}
		return State{Orders: orders, Sets: sets}

	case CreateSet:
		if s.indexOfSet(a.Set.ID) >= 0 {
			return s
		}
		set := a.Set.Clone()
		ids := set.OrderIDs
		set.OrderIDs = []string{}
		sets := append(cloneSets(s.Sets), set)
		return Reduce(State{Orders: s.Orders, Sets: sets}, AssignToSet{SetID: set.ID, OrderIDs: ids})

	case AssignToSet:
		target := s.indexOfSet(a.SetID)
		if target < 0 {
			return s
		}
		sets := cloneSets(s.Sets)
		for _, id := range a.OrderIDs {
			for i := range sets {
				if i != target {
					sets[i].OrderIDs = without(sets[i].OrderIDs, id)
				}
			}
			if !sets[target].Contains(id) {
				sets[target].OrderIDs = append(sets[target].OrderIDs, id)
			}
		}
		return State{Orders: s.Orders, Sets: sets}

	case RemoveFromSet:
		i := s.indexOfSet(a.SetID)
		if i < 0 {
			return s
		}
		sets := cloneSets(s.Sets)
		for _, id := range a.OrderIDs {
			sets[i].OrderIDs = without(sets[i].OrderIDs, id)
		}
		return State{Orders: s.Orders, Sets: sets}

	case ToggleSet:
		i := s.indexOfSet(a.ID)
		if i < 0 {
			return s
		}
		sets := cloneSets(s.Sets)
		sets[i].IsExpanded = !sets[i].IsExpanded
		return State{Orders: s.Orders, Sets: sets}

	case DeleteSet:
		sets := make([]models.OrderSet, 0, len(s.Sets))
		for _, set := range s.Sets {
			if set.ID != a.ID {
				sets = append(sets, set.Clone())
			}
		}
		return State{Orders: s.Orders, Sets: sets}
	}
	return s
}

func (s State) Order(id string) (models.Order, bool) {
	if i := s.indexOfOrder(id); i >= 0 {
		return s.Orders[i].Clone(), true
	}
	return models.Order{}, false
}

func (s State) Set(id string) (models.OrderSet, bool) {
	if i := s.indexOfSet(id); i >= 0 {
		return s.Sets[i].Clone(), true
	}
	return models.OrderSet{}, false
}

// UnsetOrders returns the orders that belong to no set.
func (s State) UnsetOrders() []models.Order {
	grouped := make(map[string]struct{})
	for _, set := range s.Sets {
		for _, id := range set.OrderIDs {
			grouped[id] = struct{}{}
		}
	}
	out := make([]models.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		if _, ok := grouped[o.ID]; !ok {
			out = append(out, o.Clone())
		}
	}
	return out
}

// SetOrders resolves a set's ids against the order list. Ids with no live
// order are skipped.
func (s State) SetOrders(setID string) []models.Order {
	set, ok := s.Set(setID)
	if !ok {
		return nil
	}
	out := make([]models.Order, 0, len(set.OrderIDs))
	for _, id := range set.OrderIDs {
		if o, ok := s.Order(id); ok {
			out = append(out, o)
		}
	}
	return out
}

func (s State) indexOfOrder(id string) int {
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) indexOfSet(id string) int {
	for i := range s.Sets {
		if s.Sets[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneOrders(in []models.Order) []models.Order {
	out := make([]models.Order, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

func cloneSets(in []models.OrderSet) []models.OrderSet {
	out := make([]models.OrderSet, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
