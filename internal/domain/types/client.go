package types

import (
	"fmt"
	"math"
	"strings"
)

// ClientID identifies a client on the backend. It is assigned by the server.
type ClientID string

// String returns the string form of the identifier.
func (id ClientID) String() string { return string(id) }

// Client is the record managed by the backend.
type Client struct {
	ID               ClientID `json:"id"`
	Name             string   `json:"name"`
	Salary           float64  `json:"salary"`
	CompanyValuation float64  `json:"companyValuation"`
}

// Validate reports whether c can be stored or displayed.
func (c Client) Validate() error {
	if strings.TrimSpace(c.ID.String()) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidClient)
	}
	if err := validAmount("salary", c.Salary); err != nil {
		return err
	}
	return validAmount("companyValuation", c.CompanyValuation)
}

// Input returns the mutable fields of c.
func (c Client) Input() ClientInput {
	return ClientInput{Name: c.Name, Salary: c.Salary, CompanyValuation: c.CompanyValuation}
}

// ClientInput is the request body for creating or updating a client.
type ClientInput struct {
	Name             string  `json:"name"`
	Salary           float64 `json:"salary"`
	CompanyValuation float64 `json:"companyValuation"`
}

// Validate reports whether in can be sent to the backend.
func (in ClientInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidClient)
	}
	if err := validAmount("salary", in.Salary); err != nil {
		return err
	}
	return validAmount("companyValuation", in.CompanyValuation)
}

func validAmount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s is not a finite number", ErrInvalidClient, field)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s is negative", ErrInvalidClient, field)
	}
	return nil
}
