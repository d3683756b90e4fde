package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/maxviazov/reminder-admin/internal/repository"
)

// PageLimits bounds pagination input.
type PageLimits struct {
	Default int
	Max     int
}

func DefaultPageLimits() PageLimits {
	return PageLimits{Default: repository.DefaultPageLimit, Max: 200}
}

// ParsePage turns raw limit/offset text into a Page. Blank values take the
// defaults; anything else must be an in-range integer or the call fails with
// ErrInvalidInput listing every bad field.
func ParsePage(rawLimit, rawOffset string, limits PageLimits) (repository.Page, error) {
	p := repository.Page{Limit: limits.Default}
	var ferrs []FieldError

	if s := strings.TrimSpace(rawLimit); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			ferrs = append(ferrs, FieldError{Field: "limit", Message: "must be an integer"})
		} else {
			p.Limit = n
		}
	}
	if s := strings.TrimSpace(rawOffset); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			ferrs = append(ferrs, FieldError{Field: "offset", Message: "must be an integer"})
		} else {
			p.Offset = n
		}
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return repository.Page{}, err
	}
	if err := validatePage(p, limits); err != nil {
		return repository.Page{}, err
	}
	return p, nil
}

func validatePage(p repository.Page, limits PageLimits) error {
	var ferrs []FieldError
	if p.Limit < 1 || p.Limit > limits.Max {
		ferrs = append(ferrs, FieldError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", limits.Max)})
	}
	if p.Offset < 0 {
		ferrs = append(ferrs, FieldError{Field: "offset", Message: "must be >= 0"})
	}
	return NewInvalidInputError(ferrs)
}
