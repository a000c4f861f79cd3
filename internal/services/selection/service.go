package selection

import (
	"fmt"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"clientdesk/internal/domain"
	"clientdesk/internal/store"
)

// StorageKey is the key the shortlist is persisted under.
const StorageKey = "selected-clients-storage"

// state is the persisted envelope body.
type state struct {
	SelectedClients []domain.Client `json:"selectedClients"`
}

// Service is the selected-clients store.
type Service struct {
	mu      sync.Mutex
	kv      domain.KeyValueStore
	log     logrus.FieldLogger
	clients []domain.Client
}

// New returns a Service rehydrated from kv. It never fails: unreadable or
// invalid persisted data is logged and replaced by an empty shortlist.
func New(kv domain.KeyValueStore, log logrus.FieldLogger) *Service {
	s := &Service{
		kv:      kv,
		log:     log.WithField("component", "selection"),
		clients: []domain.Client{},
	}
	s.rehydrate()
	return s
}

func (s *Service) rehydrate() {
	st, version, ok, err := store.LoadEnvelope[state](s.kv, StorageKey)
	if err != nil {
		s.log.WithError(err).Warn("discarding persisted selection")
		return
	}
	if !ok {
		return
	}
	if version != store.EnvelopeVersion {
		s.log.WithField("version", version).Debug("loading selection written by another version")
	}
	if st.SelectedClients == nil {
		s.log.Warn("discarding persisted selection: missing selectedClients")
		return
	}
	seen := make(map[domain.ClientID]struct{}, len(st.SelectedClients))
	for _, c := range st.SelectedClients {
		if err := c.Validate(); err != nil {
			s.log.WithError(err).Warn("discarding persisted selection")
			return
		}
		if _, dup := seen[c.ID]; dup {
			s.log.WithField("id", c.ID).Warn("discarding persisted selection: duplicate id")
			return
		}
		seen[c.ID] = struct{}{}
	}
	s.clients = st.SelectedClients
}

// Add appends client unless a client with the same id is already selected.
// The existing entry is never replaced. A client that fails validation is
// rejected and nothing changes.
func (s *Service) Add(client domain.Client) error {
	if err := client.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(client.ID) >= 0 {
		return nil
	}
	s.clients = append(s.clients, client)
	return s.persist()
}

// Remove drops the client with id, if present.
func (s *Service) Remove(id domain.ClientID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients = slices.DeleteFunc(s.clients, func(c domain.Client) bool { return c.ID == id })
	return s.persist()
}

// Clear empties the shortlist.
func (s *Service) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients = []domain.Client{}
	return s.persist()
}

// Clients returns a copy of the shortlist in insertion order.
func (s *Service) Clients() []domain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.clients)
}

// Contains reports whether id is selected.
func (s *Service) Contains(id domain.ClientID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

// Len returns the number of selected clients.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Service) indexOf(id domain.ClientID) int {
	return slices.IndexFunc(s.clients, func(c domain.Client) bool { return c.ID == id })
}

// persist writes the full shortlist. Callers hold s.mu.
func (s *Service) persist() error {
	if err := store.SaveEnvelope(s.kv, StorageKey, state{SelectedClients: s.clients}); err != nil {
		return fmt.Errorf("persist selection: %w", err)
	}
	return nil
}

// Compile-time assertion that Service implements domain.SelectionService.
var _ domain.SelectionService = (*Service)(nil)
