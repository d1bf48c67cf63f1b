package board

import "errors"

var (
	// ErrInvalidStage reports a target stage unknown to the registry.
	ErrInvalidStage = errors.New("invalid stage")
	// ErrStockNotFound reports an id that resolves to no tracked stock.
	ErrStockNotFound = errors.New("stock not found")
	// ErrRationaleRequired reports a forced move with an empty rationale.
	ErrRationaleRequired = errors.New("forced move requires a rationale")
	// ErrDuplicateTicker reports a creation colliding with an existing ticker.
	ErrDuplicateTicker = errors.New("duplicate ticker")
	// ErrMissingField reports a creation with a blank required field.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidStageDefinition reports registry misconfiguration. It is more
	// severe than the user input errors above.
	ErrInvalidStageDefinition = errors.New("invalid stage definition")
)
