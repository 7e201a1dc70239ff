package platform

import (
	"errors"
	"fmt"

	"github.com/mj1618/storeshots/internal/model"
)

// ErrElementNotFound is matched by every *ElementNotFoundError.
var ErrElementNotFound = errors.New("element not found")

// ElementNotFoundError reports a query or activation that targeted an element
// which does not exist in the current element set.
type ElementNotFoundError struct {
	Index int               // Requested index
	Count int               // Number of elements in the query result (-1 if unknown)
	Ref   *model.ElementRef // Stale ref, if the failure came from Activate
}

func (e *ElementNotFoundError) Error() string {
	if e.Ref != nil {
		return fmt.Sprintf("element not found: %s is stale or gone", e.Ref)
	}
	if e.Count >= 0 {
		return fmt.Sprintf("element not found: no button at index %d (%d on screen)", e.Index, e.Count)
	}
	return fmt.Sprintf("element not found: no button at index %d", e.Index)
}

// Is makes errors.Is(err, ErrElementNotFound) succeed.
func (e *ElementNotFoundError) Is(target error) bool {
	return target == ErrElementNotFound
}

// ElementAt picks the element at index from a query result.
func ElementAt(refs []model.ElementRef, index int) (model.ElementRef, error) {
	if index < 0 || index >= len(refs) {
		return model.ElementRef{}, &ElementNotFoundError{Index: index, Count: len(refs)}
	}
	return refs[index], nil
}

// StaleRef returns the error an ActionPerformer reports for a ref that no
// longer resolves.
func StaleRef(ref model.ElementRef) error {
	r := ref
	return &ElementNotFoundError{Index: ref.Index, Count: -1, Ref: &r}
}

// ErrNotLaunched is returned by application handles used before Launch or
// after Terminate.
var ErrNotLaunched = errors.New("application not launched")
