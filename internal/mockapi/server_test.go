package mockapi_test

import (
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clientdesk/internal/domain"
	"clientdesk/internal/mockapi"
)

func newServer(t *testing.T, seed int) (*mockapi.Store, *httptest.Server) {
	t.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)

	st := mockapi.NewStore()
	st.Seed(seed)
	srv := httptest.NewServer(mockapi.NewServer(st, l))
	t.Cleanup(srv.Close)
	return st, srv
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func TestStore_Page(t *testing.T) {
	st := mockapi.NewStore()
	st.Seed(35)

	p := st.Page(1, 16)
	assert.Len(t, p.Clients, 16)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 1, p.CurrentPage)

	p = st.Page(3, 16)
	assert.Len(t, p.Clients, 3)

	p = st.Page(9, 16)
	assert.Empty(t, p.Clients)
	assert.NotNil(t, p.Clients)
	assert.Equal(t, 9, p.CurrentPage)
}

func TestStore_PageHugeValues(t *testing.T) {
	st := mockapi.NewStore()
	st.Seed(5)

	p := st.Page(math.MaxInt, 2)
	assert.Empty(t, p.Clients)
	assert.Equal(t, 3, p.TotalPages)

	p = st.Page(1, math.MaxInt)
	assert.Len(t, p.Clients, 5)
	assert.Equal(t, 1, p.TotalPages)

	p = st.Page(math.MaxInt, math.MaxInt)
	assert.Empty(t, p.Clients)
}

func TestStore_EmptyHasZeroPages(t *testing.T) {
	p := mockapi.NewStore().Page(1, 10)
	assert.Equal(t, 0, p.TotalPages)
	assert.Empty(t, p.Clients)
}

func TestStore_SeedIsValid(t *testing.T) {
	st := mockapi.NewStore()
	st.Seed(50)
	seen := map[domain.ClientID]bool{}
	for _, c := range st.Page(1, 50).Clients {
		require.NoError(t, c.Validate())
		assert.False(t, seen[c.ID])
		seen[c.ID] = true
	}
	assert.Equal(t, 50, st.Len())
}

func TestServer_List(t *testing.T) {
	_, srv := newServer(t, 20)

	resp, b := do(t, http.MethodGet, srv.URL+"/users?page=2&limit=8", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page domain.Page
	require.NoError(t, json.Unmarshal(b, &page))
	assert.Len(t, page.Clients, 8)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
}

func TestServer_ListBadQuery(t *testing.T) {
	_, srv := newServer(t, 1)

	for _, q := range []string{
		"page=0",
		"limit=-1",
		"page=abc",
		"page=2147483648",
		"limit=9223372036854775807&page=9223372036854775807",
	} {
		resp, _ := do(t, http.MethodGet, srv.URL+"/users?"+q, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestServer_CreatePatchDelete(t *testing.T) {
	st, srv := newServer(t, 0)

	resp, b := do(t, http.MethodPost, srv.URL+"/users", `{"name":"Ana","salary":3500,"companyValuation":120000}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var c domain.Client
	require.NoError(t, json.Unmarshal(b, &c))
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Ana", c.Name)

	resp, b = do(t, http.MethodPatch, srv.URL+"/users/"+c.ID.String(), `{"salary":4000}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated domain.Client
	require.NoError(t, json.Unmarshal(b, &updated))
	assert.Equal(t, 4000.0, updated.Salary)
	assert.Equal(t, "Ana", updated.Name)

	resp, _ = do(t, http.MethodDelete, srv.URL+"/users/"+c.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, st.Len())

	resp, _ = do(t, http.MethodDelete, srv.URL+"/users/"+c.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_CreateRejectsInvalid(t *testing.T) {
	_, srv := newServer(t, 0)

	for _, body := range []string{
		`not json`,
		`{"name":"Ana"}`,
		`{"name":"","salary":1,"companyValuation":1}`,
		`{"name":"Ana","salary":-1,"companyValuation":1}`,
	} {
		resp, b := do(t, http.MethodPost, srv.URL+"/users", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		assert.Contains(t, string(b), `"error"`)
	}
}

func TestServer_PatchUnknown(t *testing.T) {
	_, srv := newServer(t, 0)

	resp, _ := do(t, http.MethodPatch, srv.URL+"/users/nope", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
