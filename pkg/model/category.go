package model

import (
	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrInvalidCategory = goerr.New("invalid category")
)

// Category is one of the tracked data domains.
type Category string

const (
	CategoryStrength  Category = "strength"
	CategoryCardio    Category = "cardio"
	CategoryNutrition Category = "nutrition"
	CategoryRecovery  Category = "recovery"
	CategoryWrestling Category = "wrestling"
	CategoryInjury    Category = "injury"
)

// AllCategories returns every category in alert evaluation order.
func AllCategories() []Category {
	return []Category{
		CategoryStrength,
		CategoryRecovery,
		CategoryNutrition,
		CategoryWrestling,
		CategoryInjury,
		CategoryCardio,
	}
}

// Validate checks if the category is known
func (c Category) Validate() error {
	switch c {
	case CategoryStrength, CategoryCardio, CategoryNutrition, CategoryRecovery, CategoryWrestling, CategoryInjury:
		return nil
	default:
		return goerr.Wrap(ErrInvalidCategory, "unknown category", goerr.V("category", c))
	}
}

// Title returns the wording used for the category in prompts and messages.
func (c Category) Title() string {
	switch c {
	case CategoryStrength:
		return "strength training"
	case CategoryCardio:
		return "cardio training"
	case CategoryWrestling:
		return "wrestling training"
	default:
		return string(c)
	}
}
