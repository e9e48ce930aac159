package compare

import (
	"errors"
	"fmt"
)

var ErrDocumentUnreadable = errors.New("document unreadable")

// DocumentError reports which document of a comparison could not be read.
// Page is -1 when the document itself failed to open.
type DocumentError struct {
	Position int
	Path     string
	Page     int
	Err      error
}

func (e *DocumentError) Error() string {
	if e.Page < 0 {
		return fmt.Sprintf("document %d (%s): %v", e.Position, e.Path, e.Err)
	}
	return fmt.Sprintf("document %d (%s) page %d: %v", e.Position, e.Path, e.Page, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

func (e *DocumentError) Is(target error) bool {
	return target == ErrDocumentUnreadable
}
