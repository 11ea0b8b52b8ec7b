// Package validation checks API requests and configuration values.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/hydronet/pkg/network"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxNameLength      = 64
	MaxProperties      = 50
	MaxPropertyKey     = 64
	MaxSimulationSteps = 3600

	// DefaultSimulationDuration applies when a run request omits duration
	DefaultSimulationDuration = 20

	// Deck identifiers are whitespace-delimited, so names may not contain spaces
	namePattern    = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)
	propKeyPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

func init() {
	validate = validator.New()

	// Report json names so errors match what the client sent
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	validate.RegisterValidation("elementtype", func(fl validator.FieldLevel) bool {
		_, ok := network.ParseElementType(fl.Field().String())
		return ok
	})
}

// FieldError is a validation failure tied to one request field
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fieldErrorf(field, format string, args ...any) error {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ElementRequest represents a request to create a network element
type ElementRequest struct {
	Type       string         `json:"type" validate:"required,elementtype"`
	Name       string         `json:"name" validate:"required,max=64"`
	NodeA      *int64         `json:"nodeA" validate:"omitempty,min=0"`
	NodeB      *int64         `json:"nodeB" validate:"omitempty,min=0"`
	Properties map[string]any `json:"properties" validate:"omitempty,max=50"`
}

// NodeRequest represents a request to create a system node
type NodeRequest struct {
	NodeID    *int64   `json:"nodeId" validate:"required,min=0"`
	Elevation *float64 `json:"elevation" validate:"required"`
}

// SimulationRequest represents a request to run a simulation
type SimulationRequest struct {
	Duration *int `json:"duration" validate:"omitempty,min=1,max=3600"`
}

// ValidateElementRequest validates an element creation request
func ValidateElementRequest(req *ElementRequest) error {
	if req == nil {
		return errors.New("element request cannot be nil")
	}

	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	if err := ValidateElementName(req.Name); err != nil {
		return err
	}

	for key, value := range req.Properties {
		if err := ValidatePropertyKey(key); err != nil {
			return fieldErrorf("properties", "%v", err)
		}
		if err := validatePropertyValue(key, value); err != nil {
			return fieldErrorf("properties", "%v", err)
		}
	}

	return nil
}

// ValidateElementName checks that name is usable as a deck identifier.
// Deck records are whitespace-delimited lines, so a name must be a single
// non-empty token.
func ValidateElementName(name string) error {
	if name == "" {
		return fieldErrorf("name", "is required")
	}
	if len(name) > MaxNameLength {
		return fieldErrorf("name", "exceeds maximum length of %d characters", MaxNameLength)
	}
	if !namePattern.MatchString(name) {
		return fieldErrorf("name", "%q contains invalid characters (letters, digits, '_', '.', '-' allowed)", name)
	}
	return nil
}

// ValidateNodeRequest validates a system node creation request
func ValidateNodeRequest(req *NodeRequest) error {
	if req == nil {
		return errors.New("node request cannot be nil")
	}

	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	return nil
}

// ValidateSimulationRequest validates a run request against maxDuration and
// fills in the default duration. maxDuration <= 0 means MaxSimulationSteps.
func ValidateSimulationRequest(req *SimulationRequest, maxDuration int) error {
	if req == nil {
		return errors.New("simulation request cannot be nil")
	}

	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	if maxDuration <= 0 || maxDuration > MaxSimulationSteps {
		maxDuration = MaxSimulationSteps
	}
	if req.Duration == nil {
		d := DefaultSimulationDuration
		if d > maxDuration {
			d = maxDuration
		}
		req.Duration = &d
	}
	if *req.Duration > maxDuration {
		return fieldErrorf("duration", "must not exceed %d", maxDuration)
	}

	return nil
}

// ValidatePropertyKey validates a property key
func ValidatePropertyKey(key string) error {
	if key == "" {
		return errors.New("property key cannot be empty")
	}
	if len(key) > MaxPropertyKey {
		return fmt.Errorf("property key '%s' exceeds maximum length of %d characters", key, MaxPropertyKey)
	}
	if !propKeyPattern.MatchString(key) {
		return fmt.Errorf("property key '%s' is invalid (must start with letter or underscore, followed by alphanumeric or underscore)", key)
	}
	return nil
}

// validatePropertyValue accepts scalars only. Non-numeric scalars are stored
// but ignored by the deck encoder.
func validatePropertyValue(key string, value any) error {
	switch value.(type) {
	case nil, bool, string, float64, float32, int, int64, int32, json.Number:
		return nil
	default:
		return fmt.Errorf("property '%s' must be a scalar value", key)
	}
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fieldErrorf(field, "field is required")
		case "min":
			return fieldErrorf(field, "must be at least %s", param)
		case "max":
			return fieldErrorf(field, "must not exceed %s", param)
		case "elementtype":
			return fieldErrorf(field, "unknown element type %q (expected one of %s)", e.Value(), typeList())
		default:
			return fieldErrorf(field, "validation failed (%s)", e.Tag())
		}
	}

	return err
}

func typeList() string {
	names := make([]string, len(network.ElementTypes))
	for i, t := range network.ElementTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
