package recipe

import "errors"

// Domain errors for recipe resolution

var (
	// Constraint validation errors
	ErrMissingField       = errors.New("required preference missing")
	ErrUnknownOption      = errors.New("unrecognized preference value")
	ErrInvalidTimeCeiling = errors.New("time ceiling must be positive or zero for no limit")

	// Entity validation errors
	ErrEmptyTitle       = errors.New("recipe title must not be empty")
	ErrNoInstructions   = errors.New("recipe must have at least one instruction")
	ErrUnknownOrigin    = errors.New("unknown recipe origin")
	ErrEmptyModifier    = errors.New("variation modifier must not be empty")

	// Lookup errors
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrHistoryNotFound = errors.New("history entry not found")
)
