package mockapi

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"clientdesk/internal/domain"
)

// DefaultLimit is used when a list request carries no limit.
const DefaultLimit = 16

// Patch is the PATCH /users/{id} body; nil fields are left unchanged.
type Patch struct {
	Name             *string  `json:"name"`
	Salary           *float64 `json:"salary"`
	CompanyValuation *float64 `json:"companyValuation"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server serves the clients API from a Store.
type Server struct {
	store  *Store
	log    logrus.FieldLogger
	router *mux.Router
}

// NewServer returns a Server backed by store.
func NewServer(store *Store, log logrus.FieldLogger) *Server {
	s := &Server{store: store, log: log.WithField("component", "mockapi")}
	r := mux.NewRouter()
	r.HandleFunc("/users", s.list).Methods(http.MethodGet)
	r.HandleFunc("/users", s.create).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}", s.patch).Methods(http.MethodPatch)
	r.HandleFunc("/users/{id}", s.delete).Methods(http.MethodDelete)
	r.Use(s.accessLog)
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := queryInt(r, "limit", DefaultLimit)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.Page(page, limit))
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var p Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if p.Name == nil || p.Salary == nil || p.CompanyValuation == nil {
		s.writeError(w, http.StatusBadRequest, "name, salary and companyValuation are required")
		return
	}
	in := domain.ClientInput{Name: *p.Name, Salary: *p.Salary, CompanyValuation: *p.CompanyValuation}
	if err := in.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c := s.store.Create(in)
	s.log.WithField("id", c.ID).Info("client created")
	s.writeJSON(w, http.StatusCreated, c)
}

func (s *Server) patch(w http.ResponseWriter, r *http.Request) {
	id := domain.ClientID(mux.Vars(r)["id"])
	var p Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := p.validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := s.store.Patch(id, p)
	if errors.Is(err, domain.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.log.WithField("id", id).Info("client updated")
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id := domain.ClientID(mux.Vars(r)["id"])
	if err := s.store.Delete(id); err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.log.WithField("id", id).Info("client deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (p Patch) validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return errors.New("name must not be blank")
	}
	for _, v := range []*float64{p.Salary, p.CompanyValuation} {
		if v != nil && (*v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return errors.New("amounts must be finite and non-negative")
		}
	}
	return nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%s must be an integer between 1 and %d", key, math.MaxInt32)
	}
	return n, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Warn("write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, errorResponse{Error: msg})
}

// statusRecorder captures the status and size written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.RequestURI(),
			"remote":   r.RemoteAddr,
			"status":   rec.status,
			"bytes":    rec.bytes,
			"duration": time.Since(start),
		}).Debug("request")
	})
}
