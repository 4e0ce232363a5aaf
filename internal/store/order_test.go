package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"tradesim/internal/domain"
)

func makeOrder(id string, owner domain.Owner, offset time.Duration) *domain.Order {
	return &domain.Order{
		ID:        id,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(offset),
		Side:      domain.OrderSideBid,
		Price:     9800,
		Quantity:  1,
		Status:    domain.OrderStatusActive,
		Owner:     owner,
	}
}

func TestOrderStore_CreateAndGet(t *testing.T) {
	s := NewOrderStore()
	o := makeOrder("o1", domain.OwnerHuman, 0)
	s.Create(o)

	got, err := s.Get("o1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != o {
		t.Error("expected the stored order back")
	}
	if s.Count() != 1 {
		t.Errorf("expected count 1, got %d", s.Count())
	}
}

func TestOrderStore_GetMissing(t *testing.T) {
	s := NewOrderStore()
	_, err := s.Get("missing")
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderStore_ListByOwner(t *testing.T) {
	s := NewOrderStore()
	s.Create(makeOrder("h1", domain.OwnerHuman, 0))
	s.Create(makeOrder("s1", domain.OwnerSystem, time.Second))
	s.Create(makeOrder("h2", domain.OwnerHuman, 2*time.Second))

	human := s.ListByOwner(domain.OwnerHuman)
	if len(human) != 2 || human[0].ID != "h1" || human[1].ID != "h2" {
		t.Errorf("expected [h1, h2] in creation order, got %+v", human)
	}

	system := s.ListByOwner(domain.OwnerSystem)
	if len(system) != 1 || system[0].ID != "s1" {
		t.Errorf("expected [s1], got %+v", system)
	}
}

func TestOrderStore_ListByOwnerEmpty(t *testing.T) {
	s := NewOrderStore()
	if got := s.ListByOwner(domain.OwnerHuman); len(got) != 0 {
		t.Errorf("expected empty slice, got %+v", got)
	}
}

func TestOrderStore_TerminalOrdersStayQueryable(t *testing.T) {
	s := NewOrderStore()
	o := makeOrder("o1", domain.OwnerHuman, 0)
	s.Create(o)

	o.Status = domain.OrderStatusCancelled
	got, err := s.Get("o1")
	if err != nil {
		t.Fatalf("get after cancel: %v", err)
	}
	if got.Status != domain.OrderStatusCancelled {
		t.Errorf("expected cancelled, got %s", got.Status)
	}
}

func TestOrderStore_ConcurrentAccess(t *testing.T) {
	s := NewOrderStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := fmt.Sprintf("o-%d-%d", i, j)
				s.Create(makeOrder(id, domain.OwnerSystem, 0))
				if _, err := s.Get(id); err != nil {
					t.Errorf("get %s: %v", id, err)
				}
				s.ListByOwner(domain.OwnerSystem)
			}
		}(i)
	}
	wg.Wait()

	if s.Count() != 1000 {
		t.Errorf("expected 1000 orders, got %d", s.Count())
	}
}
