package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"clientdesk/internal/domain"
	"clientdesk/internal/store"
)

// StorageKey is the key the session is persisted under.
const StorageKey = "user-storage"

// ErrEmptyName is returned by Login for a blank name.
var ErrEmptyName = errors.New("Por favor, digite seu nome.")

type state struct {
	Name *string `json:"name"`
}

// Service is the persisted login session.
type Service struct {
	mu   sync.Mutex
	kv   domain.KeyValueStore
	log  logrus.FieldLogger
	name *string
}

// New returns a Service rehydrated from kv. Corrupt data is treated as
// logged out.
func New(kv domain.KeyValueStore, log logrus.FieldLogger) *Service {
	s := &Service{kv: kv, log: log.WithField("component", "session")}

	st, version, ok, err := store.LoadEnvelope[state](kv, StorageKey)
	switch {
	case err != nil:
		s.log.WithError(err).Warn("discarding persisted session")
	case !ok:
	default:
		if version != store.EnvelopeVersion {
			s.log.WithField("version", version).Debug("loading session written by another version")
		}
		if st.Name != nil && strings.TrimSpace(*st.Name) == "" {
			s.log.Warn("discarding persisted session: blank name")
			break
		}
		s.name = st.Name
	}
	return s
}

// Login records name, trimmed of surrounding whitespace.
func (s *Service) Login(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = &name
	return s.persist()
}

// Logout forgets the name.
func (s *Service) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = nil
	return s.persist()
}

// Name returns the logged-in name, if any.
func (s *Service) Name() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.name == nil {
		return "", false
	}
	return *s.name, true
}

func (s *Service) persist() error {
	if err := store.SaveEnvelope(s.kv, StorageKey, state{Name: s.name}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Compile-time assertion that Service implements domain.SessionService.
var _ domain.SessionService = (*Service)(nil)
