package clients_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clientdesk/internal/domain"
	"clientdesk/internal/services/clients"
)

// recordingAPI captures the last request and answers with err when set.
type recordingAPI struct {
	err     error
	lastID  domain.ClientID
	lastIn  domain.ClientInput
	deleted []domain.ClientID
}

func (r *recordingAPI) ListClients(context.Context, int, int) (domain.Page, error) {
	return domain.Page{}, nil
}

func (r *recordingAPI) CreateClient(_ context.Context, in domain.ClientInput) (domain.Client, error) {
	r.lastIn = in
	if r.err != nil {
		return domain.Client{}, r.err
	}
	return domain.Client{ID: "new", Name: in.Name, Salary: in.Salary, CompanyValuation: in.CompanyValuation}, nil
}

func (r *recordingAPI) UpdateClient(_ context.Context, id domain.ClientID, in domain.ClientInput) (domain.Client, error) {
	r.lastID, r.lastIn = id, in
	if r.err != nil {
		return domain.Client{}, r.err
	}
	return domain.Client{ID: id, Name: in.Name, Salary: in.Salary, CompanyValuation: in.CompanyValuation}, nil
}

func (r *recordingAPI) DeleteClient(_ context.Context, id domain.ClientID) error {
	if r.err != nil {
		return r.err
	}
	r.deleted = append(r.deleted, id)
	return nil
}

func newService(api domain.ClientAPI) *clients.Service {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return clients.New(api, l)
}

func TestCreate(t *testing.T) {
	api := &recordingAPI{}
	s := newService(api)

	in := domain.ClientInput{Name: "Ana", Salary: 10, CompanyValuation: 20}
	c, err := s.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, domain.ClientID("new"), c.ID)
	assert.Equal(t, in, api.lastIn)
}

func TestCreate_InvalidInputNeverReachesAPI(t *testing.T) {
	api := &recordingAPI{}
	s := newService(api)

	_, err := s.Create(context.Background(), domain.ClientInput{Name: "", Salary: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidClient)
	assert.Equal(t, domain.ClientInput{}, api.lastIn)
}

func TestUpdate(t *testing.T) {
	api := &recordingAPI{}
	s := newService(api)

	in := domain.ClientInput{Name: "Bruno", Salary: 1, CompanyValuation: 2}
	c, err := s.Update(context.Background(), "42", in)
	require.NoError(t, err)
	assert.Equal(t, domain.ClientID("42"), c.ID)
	assert.Equal(t, domain.ClientID("42"), api.lastID)

	_, err = s.Update(context.Background(), "", in)
	assert.ErrorIs(t, err, domain.ErrInvalidClient)
}

func TestDelete(t *testing.T) {
	api := &recordingAPI{}
	s := newService(api)

	require.NoError(t, s.Delete(context.Background(), "7"))
	assert.Equal(t, []domain.ClientID{"7"}, api.deleted)

	assert.ErrorIs(t, s.Delete(context.Background(), ""), domain.ErrInvalidClient)
}

func TestAPIErrorsAreWrapped(t *testing.T) {
	api := &recordingAPI{err: domain.ErrNotFound}
	s := newService(api)

	err := s.Delete(context.Background(), "7")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Update(context.Background(), "7", domain.ClientInput{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	api.err = errors.New("timeout")
	_, err = s.Create(context.Background(), domain.ClientInput{Name: "x"})
	assert.ErrorContains(t, err, "timeout")
}
