package clients

import (
	"errors"
	"strconv"
	"strings"

	"clientdesk/internal/domain"
)

// Form validation errors. Their messages are shown to the user as-is.
var (
	ErrMissingFields = errors.New("Todos os campos são obrigatórios.")
	ErrNotNumeric    = errors.New("Salário e Valor da Empresa devem ser números.")
	ErrNegative      = errors.New("Salário e Valor da Empresa não podem ser negativos.")
)

// ParseInput turns raw form fields into a ClientInput.
//
// Amount fields keep only digits, '.' and ','. A comma is the decimal
// separator unless a dot follows it, so both "1.234,56" and "1,234.56"
// parse as 1234.56.
func ParseInput(name, salary, valuation string) (domain.ClientInput, error) {
	name = strings.TrimSpace(name)
	if strings.Contains(salary, "-") || strings.Contains(valuation, "-") {
		return domain.ClientInput{}, ErrNegative
	}
	salary, valuation = keepNumeric(salary), keepNumeric(valuation)
	if name == "" || salary == "" || valuation == "" {
		return domain.ClientInput{}, ErrMissingFields
	}

	s, err := parseAmount(salary)
	if err != nil {
		return domain.ClientInput{}, err
	}
	v, err := parseAmount(valuation)
	if err != nil {
		return domain.ClientInput{}, err
	}
	return domain.ClientInput{Name: name, Salary: s, CompanyValuation: v}, nil
}

// FormatAmount renders v the way ParseInput reads it back, for prefilling
// edit forms.
func FormatAmount(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', -1, 64), ".", ",", 1)
}

func keepNumeric(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			return r
		}
		return -1
	}, s)
}

func parseAmount(s string) (float64, error) {
	if comma := strings.LastIndexByte(s, ','); comma >= 0 && !strings.Contains(s[comma:], ".") {
		s = groupSeparators.Replace(s[:comma]) + "." + s[comma+1:]
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrNotNumeric
	}
	return f, nil
}

var groupSeparators = strings.NewReplacer(".", "", ",", "")
