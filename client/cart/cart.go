// Package cart is the client-side shopping cart: an ordered ledger of
// product lines, written through to local storage on every change.
package cart

import (
	"fmt"
	"math"
	"sync"

	"shop-service/models"
)

// Item is one cart line. Quantity is always at least 1.
type Item struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Persister stores full cart snapshots.
type Persister interface {
	Load() ([]Item, error)
	Save(items []Item) error
}

// Store holds the cart in memory. Mutations apply in memory first and then
// save the whole snapshot; the returned error only reports the save.
type Store struct {
	mu        sync.Mutex
	items     []Item
	persister Persister
}

// New returns an empty cart that saves through p.
func New(p Persister) *Store {
	return &Store{persister: p}
}

// Open loads the persisted snapshot. Lines with a non-positive quantity and
// repeated product ids are dropped.
func Open(p Persister) (*Store, error) {
	loaded, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	s := New(p)
	seen := make(map[int64]bool, len(loaded))
	for _, it := range loaded {
		if it.Quantity <= 0 || seen[it.Product.ID] {
			continue
		}
		seen[it.Product.ID] = true
		s.items = append(s.items, it)
	}
	return s, nil
}

// Add puts one more unit of product in the cart, appending a new line when
// the product is not there yet.
func (s *Store) Add(product models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(product.ID); i >= 0 {
		s.items[i].Quantity++
	} else {
		s.items = append(s.items, Item{Product: product, Quantity: 1})
	}
	return s.save()
}

// UpdateQuantity sets the quantity of productID. n <= 0 removes the line.
// Unknown ids are ignored.
func (s *Store) UpdateQuantity(productID int64, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(productID)
	if i < 0 {
		return nil
	}
	if n <= 0 {
		s.removeAt(i)
	} else {
		s.items[i].Quantity = n
	}
	return s.save()
}

func (s *Store) Remove(productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(productID)
	if i < 0 {
		return nil
	}
	s.removeAt(i)
	return s.save()
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.save()
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Total is the unrounded sum of price times quantity.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, it := range s.items {
		total += it.Product.Price * float64(it.Quantity)
	}
	return total
}

// ItemsCount is the sum of quantities.
func (s *Store) ItemsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, it := range s.items {
		count += it.Quantity
	}
	return count
}

// FormatAmount rounds to cents for display.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", math.Round(amount*100)/100)
}

func (s *Store) index(productID int64) int {
	for i, it := range s.items {
		if it.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) removeAt(i int) {
	s.items = append(s.items[:i], s.items[i+1:]...)
}

func (s *Store) save() error {
	snapshot := make([]Item, len(s.items))
	copy(snapshot, s.items)
	return s.persister.Save(snapshot)
}
