package domain

import "fmt"

// PlantInput is the validated, coerced payload for creating a plant.
// Coercion from form strings happens once at the HTTP boundary; by the
// time an input reaches the service it is fully typed.
type PlantInput struct {
	Name          string
	Description   string
	Price         float64
	Category      string
	Rating        float64
	StockQuantity int
	Popular       bool
	Care          Care
}

// Validate enforces the required-field constraints of the catalog.
func (in PlantInput) Validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Description == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if in.Category == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrValidation)
	}
	if in.Rating < 0 || in.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrValidation)
	}
	if in.StockQuantity < 0 {
		return fmt.Errorf("%w: stockQuantity must be non-negative", ErrValidation)
	}
	return nil
}

// PlantUpdate is a partial update: nil fields are left untouched.
// Images is set by the lifecycle service after new uploads succeed and
// is never populated directly from the request.
type PlantUpdate struct {
	Name          *string
	Description   *string
	Price         *float64
	Category      *string
	Rating        *float64
	StockQuantity *int
	Popular       *bool
	Care          *Care
	Images        []string
}

// Validate re-checks constraints for the fields present in the update.
func (u PlantUpdate) Validate() error {
	if u.Name != nil && *u.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	if u.Description != nil && *u.Description == "" {
		return fmt.Errorf("%w: description must not be empty", ErrValidation)
	}
	if u.Category != nil && *u.Category == "" {
		return fmt.Errorf("%w: category must not be empty", ErrValidation)
	}
	if u.Price != nil && *u.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrValidation)
	}
	if u.Rating != nil && (*u.Rating < 0 || *u.Rating > 5) {
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrValidation)
	}
	if u.StockQuantity != nil && *u.StockQuantity < 0 {
		return fmt.Errorf("%w: stockQuantity must be non-negative", ErrValidation)
	}
	return nil
}
