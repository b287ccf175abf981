// Package memory implements the remote document store as an in-process map.
// It backs offline deployments without a Firebase project and serves as the
// remote double in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"bodybalance/internal/domain/service"
)

type userDocs struct {
	profile *service.ProfileDocument
	days    map[string]*service.DayDocument
	weights map[string]*service.WeightDocument
	foods   map[uint]*service.FoodDocument
}

// Store implements service.RemoteStore with in-memory maps keyed by user id.
// All methods are safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	users map[string]*userDocs
}

// New is the constructor for Store.
func New() *Store {
	return &Store{users: make(map[string]*userDocs)}
}

func (s *Store) user(userID string) *userDocs {
	u, ok := s.users[userID]
	if !ok {
		u = &userDocs{
			days:    make(map[string]*service.DayDocument),
			weights: make(map[string]*service.WeightDocument),
			foods:   make(map[uint]*service.FoodDocument),
		}
		s.users[userID] = u
	}

	return u
}

// SetProfile overwrites the singleton profile document.
func (s *Store) SetProfile(_ context.Context, userID string, doc *service.ProfileDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *doc
	s.user(userID).profile = &cp

	return nil
}

// GetProfile retrieves the profile document.
func (s *Store) GetProfile(_ context.Context, userID string) (*service.ProfileDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok || u.profile == nil {
		return nil, service.ErrDocumentNotFound
	}

	cp := *u.profile

	return &cp, nil
}

// SetDay overwrites the day document for a date.
func (s *Store) SetDay(_ context.Context, userID, date string, doc *service.DayDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *doc
	cp.Meals = append([]service.MealDocument(nil), doc.Meals...)
	s.user(userID).days[date] = &cp

	return nil
}

// ListDays retrieves all day documents for the user, ordered by date.
func (s *Store) ListDays(_ context.Context, userID string) ([]*service.DayDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, nil
	}

	docs := make([]*service.DayDocument, 0, len(u.days))
	for _, doc := range u.days {
		cp := *doc
		cp.Meals = append([]service.MealDocument(nil), doc.Meals...)
		docs = append(docs, &cp)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Date < docs[j].Date })

	return docs, nil
}

// SetWeight overwrites the weight document for a date.
func (s *Store) SetWeight(_ context.Context, userID, date string, doc *service.WeightDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *doc
	s.user(userID).weights[date] = &cp

	return nil
}

// ListWeights retrieves all weight documents for the user, ordered by date.
func (s *Store) ListWeights(_ context.Context, userID string) ([]*service.WeightDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, nil
	}

	docs := make([]*service.WeightDocument, 0, len(u.weights))
	for _, doc := range u.weights {
		cp := *doc
		docs = append(docs, &cp)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Date < docs[j].Date })

	return docs, nil
}

// DeleteWeight removes the weight document for a date.
func (s *Store) DeleteWeight(_ context.Context, userID, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[userID]; ok {
		delete(u.weights, date)
	}

	return nil
}

// SetFood overwrites the food document keyed by the local id.
func (s *Store) SetFood(_ context.Context, userID string, localID uint, doc *service.FoodDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *doc
	s.user(userID).foods[localID] = &cp

	return nil
}

// ListFoods retrieves all user-authored food documents.
func (s *Store) ListFoods(_ context.Context, userID string) ([]*service.FoodDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, nil
	}

	ids := make([]uint, 0, len(u.foods))
	for id := range u.foods {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	docs := make([]*service.FoodDocument, 0, len(ids))
	for _, id := range ids {
		cp := *u.foods[id]
		docs = append(docs, &cp)
	}

	return docs, nil
}
