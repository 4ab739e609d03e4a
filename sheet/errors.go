package sheet

import (
	"errors"
	"fmt"
)

// ErrNoReplacementParent is returned when a rehydrated container holding
// components must become writable but its backing element is not mounted
// anywhere, so there is no place to swap the writable replacement into.
// Materializing an unmounted container is caller misuse, not a condition to
// recover from.
var ErrNoReplacementParent = errors.New("style container element has no parent to swap the writable replacement into")

// DuplicateComponentError reports a second registration of a component id
// within one container.
type DuplicateComponentError struct {
	ComponentID string
}

func (e *DuplicateComponentError) Error() string {
	return fmt.Sprintf("component %q is already registered in this style container", e.ComponentID)
}

// MissingComponentError reports css injected for a component that was never
// registered. Registration must precede injection.
type MissingComponentError struct {
	ComponentID string
}

func (e *MissingComponentError) Error() string {
	return fmt.Sprintf("component %q must be registered before css can be injected for it", e.ComponentID)
}

// NotSupportedError reports an operation a container variant does not
// implement.
type NotSupportedError struct {
	Op      string
	Variant string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("%s is not supported by %s style containers", e.Op, e.Variant)
}
