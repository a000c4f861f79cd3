package api

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"

	"clientdesk/internal/domain"
)

// wireClient mirrors a client as the backend sends it. Pointers mark
// required fields.
type wireClient struct {
	ID               json.RawMessage `json:"id"`
	Name             *string         `json:"name"`
	Salary           *float64        `json:"salary"`
	CompanyValuation *float64        `json:"companyValuation"`
}

type wirePage struct {
	Clients     *[]wireClient `json:"clients"`
	TotalPages  *int          `json:"totalPages"`
	CurrentPage *int          `json:"currentPage"`
}

func (w wireClient) toDomain() (domain.Client, error) {
	id, err := decodeID(w.ID)
	if err != nil {
		return domain.Client{}, err
	}
	if w.Name == nil || w.Salary == nil || w.CompanyValuation == nil {
		return domain.Client{}, fmt.Errorf("%w: client %s: missing field", ErrMalformedResponse, id)
	}
	c := domain.Client{
		ID:               id,
		Name:             *w.Name,
		Salary:           *w.Salary,
		CompanyValuation: *w.CompanyValuation,
	}
	if err := c.Validate(); err != nil {
		return domain.Client{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return c, nil
}

func (w wirePage) toDomain() (domain.Page, error) {
	if w.Clients == nil || w.TotalPages == nil || w.CurrentPage == nil {
		return domain.Page{}, fmt.Errorf("%w: page: missing field", ErrMalformedResponse)
	}
	if *w.TotalPages < 0 || *w.CurrentPage < 1 {
		return domain.Page{}, fmt.Errorf("%w: page: totalPages=%d currentPage=%d",
			ErrMalformedResponse, *w.TotalPages, *w.CurrentPage)
	}
	out := domain.Page{
		Clients:     make([]domain.Client, 0, len(*w.Clients)),
		TotalPages:  *w.TotalPages,
		CurrentPage: *w.CurrentPage,
	}
	for _, wc := range *w.Clients {
		c, err := wc.toDomain()
		if err != nil {
			return domain.Page{}, err
		}
		out.Clients = append(out.Clients, c)
	}
	return out, nil
}

// decodeID accepts a JSON string or integer id.
func decodeID(raw json.RawMessage) (domain.ClientID, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", fmt.Errorf("%w: client: missing id", ErrMalformedResponse)
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("%w: client id: %v", ErrMalformedResponse, err)
		}
		return domain.ClientID(s), nil
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: client id %s", ErrMalformedResponse, raw)
	}
	return domain.ClientID(strconv.FormatInt(n, 10)), nil
}
