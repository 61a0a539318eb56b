package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Item is a single marketplace listing. A purchase removes the whole listing;
// quantity and price are free-form text shown to buyers, not stock counts.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Price       string `json:"price"`
	Location    string `json:"location"`
	Image       string `json:"image,omitempty"`
	Owner       string `json:"owner"`
}

// ItemDraft is a submitted listing before an id and owner are attached.
type ItemDraft struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Quantity    string `json:"quantity" validate:"required"`
	Price       string `json:"price" validate:"required"`
	Location    string `json:"location" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError lists the listing fields that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+" "+msg)
	}
	sort.Strings(parts)
	return "invalid listing: " + strings.Join(parts, ", ")
}

// Validate checks that all required listing fields are present.
// Returns a *ValidationError with per-field messages on failure.
func (d ItemDraft) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating listing: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = "is required"
	}
	return &ValidationError{Fields: fields}
}
