package store

import (
	"sort"
	"sync"

	"ahorrapp/internal/models"

	"github.com/google/uuid"
)

type userBudgets struct {
	byID     map[uuid.UUID]models.Budget
	order    []uuid.UUID
	revision uint64
}

// Budgets mirrors the persisted budget rows the same way Transactions
// mirrors transactions.
type Budgets struct {
	mu     sync.RWMutex
	byUser map[uuid.UUID]*userBudgets
}

func NewBudgets() *Budgets {
	return &Budgets{byUser: make(map[uuid.UUID]*userBudgets)}
}

func (s *Budgets) Replace(userID uuid.UUID, budgets []models.Budget) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ub := &userBudgets{
		byID:  make(map[uuid.UUID]models.Budget, len(budgets)),
		order: make([]uuid.UUID, 0, len(budgets)),
	}
	if prev, ok := s.byUser[userID]; ok {
		ub.revision = prev.revision
	}
	for _, b := range budgets {
		if _, dup := ub.byID[b.ID]; dup {
			continue
		}
		ub.byID[b.ID] = b
		ub.order = append(ub.order, b.ID)
	}
	ub.revision++
	s.byUser[userID] = ub
}

func (s *Budgets) Upsert(userID uuid.UUID, b models.Budget) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ub, ok := s.byUser[userID]
	if !ok {
		ub = &userBudgets{byID: make(map[uuid.UUID]models.Budget)}
		s.byUser[userID] = ub
	}
	if _, exists := ub.byID[b.ID]; !exists {
		ub.order = append(ub.order, b.ID)
	}
	ub.byID[b.ID] = b
	ub.revision++
}

func (s *Budgets) Remove(userID, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ub, ok := s.byUser[userID]
	if !ok {
		return
	}
	if _, exists := ub.byID[id]; !exists {
		return
	}
	delete(ub.byID, id)
	for i, other := range ub.order {
		if other == id {
			ub.order = append(ub.order[:i], ub.order[i+1:]...)
			break
		}
	}
	ub.revision++
}

// List returns a copy sorted by start date descending, newest budget
// first, ties in insertion order.
func (s *Budgets) List(userID uuid.UUID) []models.Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ub, ok := s.byUser[userID]
	if !ok {
		return nil
	}
	out := make([]models.Budget, 0, len(ub.order))
	for _, id := range ub.order {
		out = append(out, ub.byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out
}

func (s *Budgets) Revision(userID uuid.UUID) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if ub, ok := s.byUser[userID]; ok {
		return ub.revision
	}
	return 0
}

func (s *Budgets) Clear(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
}
