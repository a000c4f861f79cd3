package selection_test

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clientdesk/internal/domain"
	"clientdesk/internal/services/selection"
	"clientdesk/internal/store"
)

var (
	clientA = domain.Client{ID: "1", Name: "Cliente A", Salary: 1000, CompanyValuation: 10000}
	clientB = domain.Client{ID: "2", Name: "Cliente B", Salary: 2000, CompanyValuation: 20000}
	clientC = domain.Client{ID: "3", Name: "Cliente C", Salary: 3000.5, CompanyValuation: 30000.75}
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// persisted decodes what the store currently holds for the shortlist.
func persisted(t *testing.T, kv domain.KeyValueStore) []domain.Client {
	t.Helper()
	b, ok, err := kv.Get(selection.StorageKey)
	require.NoError(t, err)
	require.True(t, ok, "envelope must be written")

	var env struct {
		State struct {
			SelectedClients []domain.Client `json:"selectedClients"`
		} `json:"state"`
		Version int `json:"version"`
	}
	require.NoError(t, json.Unmarshal(b, &env))
	assert.Equal(t, 0, env.Version)
	return env.State.SelectedClients
}

func TestNew_StartsEmpty(t *testing.T) {
	s := selection.New(store.NewMemoryStore(), quietLogger())
	assert.Empty(t, s.Clients())
	assert.Equal(t, 0, s.Len())
}

func TestAdd_AppendsAndPersists(t *testing.T) {
	kv := store.NewMemoryStore()
	s := selection.New(kv, quietLogger())

	require.NoError(t, s.Add(clientA))

	assert.Equal(t, []domain.Client{clientA}, s.Clients())
	assert.Equal(t, []domain.Client{clientA}, persisted(t, kv))
	assert.True(t, s.Contains("1"))
}

func TestAdd_TwiceIsIdempotent(t *testing.T) {
	s := selection.New(store.NewMemoryStore(), quietLogger())

	require.NoError(t, s.Add(clientA))
	require.NoError(t, s.Add(clientA))

	assert.Equal(t, []domain.Client{clientA}, s.Clients())
}

func TestAdd_DuplicateIDKeepsFirstSnapshot(t *testing.T) {
	kv := store.NewMemoryStore()
	s := selection.New(kv, quietLogger())
	require.NoError(t, s.Add(clientA))

	changed := clientA
	changed.Name = "Outro nome"
	changed.Salary = 99999
	require.NoError(t, s.Add(changed))

	assert.Equal(t, []domain.Client{clientA}, s.Clients())
	assert.Equal(t, []domain.Client{clientA}, persisted(t, kv))
}

func TestRemove(t *testing.T) {
	kv := store.NewMemoryStore()
	s := selection.New(kv, quietLogger())
	require.NoError(t, s.Add(clientA))
	require.NoError(t, s.Add(clientB))

	require.NoError(t, s.Remove("1"))

	assert.Equal(t, []domain.Client{clientB}, s.Clients())
	assert.Equal(t, []domain.Client{clientB}, persisted(t, kv))
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	s := selection.New(store.NewMemoryStore(), quietLogger())
	require.NoError(t, s.Add(clientA))

	require.NoError(t, s.Remove("404"))

	assert.Equal(t, []domain.Client{clientA}, s.Clients())
}

func TestClear(t *testing.T) {
	kv := store.NewMemoryStore()
	s := selection.New(kv, quietLogger())
	require.NoError(t, s.Add(clientA))
	require.NoError(t, s.Add(clientB))

	require.NoError(t, s.Clear())

	assert.Empty(t, s.Clients())
	assert.Empty(t, persisted(t, kv))

	b, _, err := kv.Get(selection.StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"selectedClients":[]},"version":0}`, string(b))
}

func TestOrderPreservedAfterRemove(t *testing.T) {
	s := selection.New(store.NewMemoryStore(), quietLogger())

	require.NoError(t, s.Add(clientA))
	require.NoError(t, s.Add(clientB))
	require.NoError(t, s.Remove("1"))
	assert.Equal(t, []domain.Client{clientB}, s.Clients())

	require.NoError(t, s.Add(clientC))
	assert.Equal(t, []domain.Client{clientB, clientC}, s.Clients())
}

func TestNoDriftBetweenMemoryAndEnvelope(t *testing.T) {
	kv := store.NewMemoryStore()
	s := selection.New(kv, quietLogger())

	ops := []func() error{
		func() error { return s.Add(clientA) },
		func() error { return s.Add(clientB) },
		func() error { return s.Add(clientA) },
		func() error { return s.Remove("2") },
		func() error { return s.Add(clientC) },
		func() error { return s.Remove("404") },
		func() error { return s.Add(clientB) },
		func() error { return s.Remove("1") },
	}
	for i, op := range ops {
		require.NoError(t, op(), "op %d", i)
		assert.Equal(t, s.Clients(), persisted(t, kv), "drift after op %d", i)
	}
}

func TestRehydrate(t *testing.T) {
	kv := store.NewMemoryStore()
	first := selection.New(kv, quietLogger())
	require.NoError(t, first.Add(clientB))
	require.NoError(t, first.Add(clientA))

	second := selection.New(kv, quietLogger())
	assert.Equal(t, []domain.Client{clientB, clientA}, second.Clients())
}

func TestAdd_RejectsInvalidClient(t *testing.T) {
	kv := store.NewMemoryStore()
	s := selection.New(kv, quietLogger())
	require.NoError(t, s.Add(clientA))

	for name, c := range map[string]domain.Client{
		"empty id":        {ID: "", Name: "Sem ID", Salary: 1},
		"negative salary": {ID: "9", Name: "Negativo", Salary: -1},
		"NaN valuation":   {ID: "10", Name: "NaN", CompanyValuation: math.NaN()},
		"infinite salary": {ID: "11", Name: "Inf", Salary: math.Inf(1)},
	} {
		assert.ErrorIs(t, s.Add(c), domain.ErrInvalidClient, name)
	}

	assert.Equal(t, []domain.Client{clientA}, s.Clients())
	assert.Equal(t, []domain.Client{clientA}, persisted(t, kv))

	reloaded := selection.New(kv, quietLogger())
	assert.Equal(t, []domain.Client{clientA}, reloaded.Clients())
}

func TestRehydrate_CorruptPayloadsYieldEmpty(t *testing.T) {
	cases := map[string]string{
		"not json":          `not json at all`,
		"wrong shape":       `{"selectedClients":[]}`,
		"clients not array": `{"state":{"selectedClients":"x"},"version":0}`,
		"missing clients":   `{"state":{},"version":0}`,
		"client without id": `{"state":{"selectedClients":[{"name":"x","salary":1,"companyValuation":1}]},"version":0}`,
		"duplicate ids":     `{"state":{"selectedClients":[{"id":"1","name":"a"},{"id":"1","name":"b"}]},"version":0}`,
		"negative salary":   `{"state":{"selectedClients":[{"id":"1","name":"a","salary":-1}]},"version":0}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			kv := store.NewMemoryStore()
			require.NoError(t, kv.Set(selection.StorageKey, []byte(payload)))

			var s *selection.Service
			require.NotPanics(t, func() { s = selection.New(kv, quietLogger()) })
			assert.Empty(t, s.Clients())

			require.NoError(t, s.Add(clientA), "store stays usable after recovery")
			assert.Equal(t, []domain.Client{clientA}, persisted(t, kv))
		})
	}
}

func TestRehydrate_OtherVersionUsedAsIs(t *testing.T) {
	kv := store.NewMemoryStore()
	payload := `{"state":{"selectedClients":[{"id":"7","name":"Ana","salary":1,"companyValuation":2}]},"version":4}`
	require.NoError(t, kv.Set(selection.StorageKey, []byte(payload)))

	s := selection.New(kv, quietLogger())
	assert.Equal(t, []domain.Client{{ID: "7", Name: "Ana", Salary: 1, CompanyValuation: 2}}, s.Clients())
}

func TestClients_ReturnsCopy(t *testing.T) {
	s := selection.New(store.NewMemoryStore(), quietLogger())
	require.NoError(t, s.Add(clientA))

	got := s.Clients()
	got[0].Name = "mutated"

	assert.Equal(t, "Cliente A", s.Clients()[0].Name)
}

// failingKV reads fine but refuses writes.
type failingKV struct {
	*store.MemoryStore
}

var errQuota = errors.New("quota exceeded")

func (failingKV) Set(string, []byte) error { return errQuota }

func TestWriteFailureIsReturnedButMutationApplies(t *testing.T) {
	s := selection.New(failingKV{store.NewMemoryStore()}, quietLogger())

	err := s.Add(clientA)
	assert.ErrorIs(t, err, errQuota)
	assert.Equal(t, []domain.Client{clientA}, s.Clients())

	assert.ErrorIs(t, s.Remove("1"), errQuota)
	assert.Empty(t, s.Clients())
}

// brokenKV fails every read.
type brokenKV struct {
	*store.MemoryStore
}

func (brokenKV) Get(string) ([]byte, bool, error) { return nil, false, errors.New("disk on fire") }

func TestRehydrate_ReadErrorYieldsEmpty(t *testing.T) {
	s := selection.New(brokenKV{store.NewMemoryStore()}, quietLogger())
	assert.Empty(t, s.Clients())
}
