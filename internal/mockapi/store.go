package mockapi

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"clientdesk/internal/domain"
)

// Store holds clients in creation order.
type Store struct {
	mu      sync.RWMutex
	clients []domain.Client
}

// NewStore returns an empty Store.
func NewStore() *Store { return &Store{} }

// Page returns the clients of page (1-based) for the given limit.
func (s *Store) Page(page, limit int) domain.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.clients)
	total := n / limit
	if n%limit != 0 {
		total++
	}
	out := domain.Page{
		Clients:     []domain.Client{},
		TotalPages:  total,
		CurrentPage: page,
	}
	// page-1 < total bounds the product by n, so nothing below overflows.
	if page-1 < total {
		from := (page - 1) * limit
		to := n
		if limit < n-from {
			to = from + limit
		}
		out.Clients = slices.Clone(s.clients[from:to])
	}
	return out
}

// Create stores a new client built from in.
func (s *Store) Create(in domain.ClientInput) domain.Client {
	c := domain.Client{
		ID:               domain.ClientID(uuid.NewString()),
		Name:             in.Name,
		Salary:           in.Salary,
		CompanyValuation: in.CompanyValuation,
	}
	s.mu.Lock()
	s.clients = append(s.clients, c)
	s.mu.Unlock()
	return c
}

// Patch applies the non-nil fields of p to client id.
func (s *Store) Patch(id domain.ClientID, p Patch) (domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return domain.Client{}, domain.ErrNotFound
	}
	c := s.clients[i]
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Salary != nil {
		c.Salary = *p.Salary
	}
	if p.CompanyValuation != nil {
		c.CompanyValuation = *p.CompanyValuation
	}
	s.clients[i] = c
	return c, nil
}

// Delete removes client id.
func (s *Store) Delete(id domain.ClientID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	s.clients = slices.Delete(s.clients, i, i+1)
	return nil
}

// Len returns the number of stored clients.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Seed appends n generated clients.
func (s *Store) Seed(n int) {
	for i := range n {
		first := firstNames[i%len(firstNames)]
		last := lastNames[(i/len(firstNames))%len(lastNames)]
		s.Create(domain.ClientInput{
			Name:             fmt.Sprintf("%s %s", first, last),
			Salary:           float64(1500 + (i*733)%18000),
			CompanyValuation: float64(50000+(i*7919)%950000) + 0.5*float64(i%2),
		})
	}
}

func (s *Store) index(id domain.ClientID) int {
	return slices.IndexFunc(s.clients, func(c domain.Client) bool { return c.ID == id })
}

var (
	firstNames = []string{"Ana", "Bruno", "Carla", "Diego", "Eduarda", "Felipe", "Gabriela", "Heitor", "Isabela", "João"}
	lastNames  = []string{"Silva", "Souza", "Oliveira", "Costa", "Pereira", "Almeida", "Ferreira", "Rodrigues"}
)
