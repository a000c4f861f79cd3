package clients

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"clientdesk/internal/domain"
)

// Service validates client input and calls the backend.
type Service struct {
	api domain.ClientAPI
	log logrus.FieldLogger
}

// New returns a Service backed by api.
func New(api domain.ClientAPI, log logrus.FieldLogger) *Service {
	return &Service{api: api, log: log.WithField("component", "clients")}
}

// Create validates in and creates a client.
func (s *Service) Create(ctx context.Context, in domain.ClientInput) (domain.Client, error) {
	if err := in.Validate(); err != nil {
		return domain.Client{}, err
	}
	c, err := s.api.CreateClient(ctx, in)
	if err != nil {
		return domain.Client{}, fmt.Errorf("create client: %w", err)
	}
	s.log.WithField("id", c.ID).Info("client created")
	return c, nil
}

// Update validates in and replaces the fields of client id.
func (s *Service) Update(ctx context.Context, id domain.ClientID, in domain.ClientInput) (domain.Client, error) {
	if id == "" {
		return domain.Client{}, fmt.Errorf("%w: missing id", domain.ErrInvalidClient)
	}
	if err := in.Validate(); err != nil {
		return domain.Client{}, err
	}
	c, err := s.api.UpdateClient(ctx, id, in)
	if err != nil {
		return domain.Client{}, fmt.Errorf("update client %s: %w", id, err)
	}
	s.log.WithField("id", id).Info("client updated")
	return c, nil
}

// Delete removes client id.
func (s *Service) Delete(ctx context.Context, id domain.ClientID) error {
	if id == "" {
		return fmt.Errorf("%w: missing id", domain.ErrInvalidClient)
	}
	if err := s.api.DeleteClient(ctx, id); err != nil {
		return fmt.Errorf("delete client %s: %w", id, err)
	}
	s.log.WithField("id", id).Info("client deleted")
	return nil
}

// Compile-time assertion that Service implements domain.ClientService.
var _ domain.ClientService = (*Service)(nil)
