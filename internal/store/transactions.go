// Package store keeps per-user in-memory mirrors of the persisted
// collections. A mirror is only mutated after the repository confirms a
// write, so readers never observe a row the database rejected. Each
// user's collection carries a revision counter that derived-data caches
// key on.
package store

import (
	"sort"
	"sync"

	"ahorrapp/internal/models"

	"github.com/google/uuid"
)

type userTransactions struct {
	byID     map[uuid.UUID]models.Transaction
	order    []uuid.UUID // insertion order, used as the tie-break for equal dates
	revision uint64
}

type Transactions struct {
	mu     sync.RWMutex
	byUser map[uuid.UUID]*userTransactions
}

func NewTransactions() *Transactions {
	return &Transactions{byUser: make(map[uuid.UUID]*userTransactions)}
}

// Replace swaps the user's whole collection for freshly fetched rows.
func (s *Transactions) Replace(userID uuid.UUID, txs []models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ut := &userTransactions{
		byID:  make(map[uuid.UUID]models.Transaction, len(txs)),
		order: make([]uuid.UUID, 0, len(txs)),
	}
	if prev, ok := s.byUser[userID]; ok {
		ut.revision = prev.revision
	}
	for _, tx := range txs {
		if _, dup := ut.byID[tx.ID]; dup {
			continue
		}
		ut.byID[tx.ID] = tx
		ut.order = append(ut.order, tx.ID)
	}
	ut.revision++
	s.byUser[userID] = ut
}

// Upsert merges one canonical row by id: replaces an existing row or
// appends a new one.
func (s *Transactions) Upsert(userID uuid.UUID, tx models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ut := s.user(userID)
	if _, exists := ut.byID[tx.ID]; !exists {
		ut.order = append(ut.order, tx.ID)
	}
	ut.byID[tx.ID] = tx
	ut.revision++
}

// Remove deletes one row by id. Removing an unknown id is a no-op and
// does not bump the revision.
func (s *Transactions) Remove(userID, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ut, ok := s.byUser[userID]
	if !ok {
		return
	}
	if _, exists := ut.byID[id]; !exists {
		return
	}
	delete(ut.byID, id)
	for i, other := range ut.order {
		if other == id {
			ut.order = append(ut.order[:i], ut.order[i+1:]...)
			break
		}
	}
	ut.revision++
}

// List returns a copy of the user's collection sorted by date
// descending. Rows sharing a date keep their insertion order.
func (s *Transactions) List(userID uuid.UUID) []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ut, ok := s.byUser[userID]
	if !ok {
		return nil
	}
	out := make([]models.Transaction, 0, len(ut.order))
	for _, id := range ut.order {
		out = append(out, ut.byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Revision returns the user's collection revision, 0 when nothing has
// been loaded yet.
func (s *Transactions) Revision(userID uuid.UUID) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if ut, ok := s.byUser[userID]; ok {
		return ut.revision
	}
	return 0
}

// Clear drops the user's mirror, e.g. when a session ends.
func (s *Transactions) Clear(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
}

func (s *Transactions) user(userID uuid.UUID) *userTransactions {
	ut, ok := s.byUser[userID]
	if !ok {
		ut = &userTransactions{byID: make(map[uuid.UUID]models.Transaction)}
		s.byUser[userID] = ut
	}
	return ut
}
