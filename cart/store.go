package cart

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"munchmate/models"
)

var ErrEmptyID = errors.New("cart item id is required")

// Store holds one browsing session's cart: an ordered multiset of items.
// Adding the same id twice means two units; quantity is derived by grouping.
// The cart lives in memory only and is never durably persisted.
type Store struct {
	mu    sync.Mutex
	items []models.CartItem
}

func NewStore() *Store {
	return &Store{}
}

// Add appends one unit of item.
func (s *Store) Add(item models.CartItem) error {
	if item.ID == "" {
		return ErrEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	return nil
}

// Remove deletes every unit of the given id.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
}

// Decrease removes exactly one unit of the given id, if present. The last
// occurrence is dropped so first-seen ordering of the rest is untouched.
func (s *Store) Decrease(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Len returns the number of raw units in the cart.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Items returns a snapshot of the raw cart contents.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make([]models.CartItem, len(s.items))
	copy(snap, s.items)
	return snap
}

// Grouped aggregates units by id into line items, preserving the order in
// which each id first appeared. Subtotals are computed in integer paise to
// keep repeated additions from drifting.
func (s *Store) Grouped() []models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := make(map[string]int)
	grouped := make([]models.LineItem, 0)
	for _, it := range s.items {
		if at, ok := index[it.ID]; ok {
			grouped[at].Quantity++
			continue
		}
		index[it.ID] = len(grouped)
		grouped = append(grouped, models.LineItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Image:    it.Image,
			Quantity: 1,
		})
	}
	for i := range grouped {
		paise := toPaise(grouped[i].Price) * int64(grouped[i].Quantity)
		grouped[i].Subtotal = fromPaise(paise)
	}
	return grouped
}

// TotalPaise is the sum of unit prices over every raw item, in paise.
func (s *Store) TotalPaise() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, it := range s.items {
		total += toPaise(it.Price)
	}
	return total
}

// Total returns the cart total in rupees.
func (s *Store) Total() float64 {
	return fromPaise(s.TotalPaise())
}

// FormatTotal renders the cart total with two decimal places for display.
func (s *Store) FormatTotal() string {
	return FormatAmount(s.Total())
}

// FormatAmount renders a rupee amount with two decimal places.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

func toPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromPaise(paise int64) float64 {
	return float64(paise) / 100
}
