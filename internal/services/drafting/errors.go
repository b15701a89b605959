package drafting

import (
	"errors"
	"fmt"

	"github.com/Windi-Fikriyansyah/gigstudio/internal/gigdraft"
)

var (
	ErrSessionNotFound = errors.New("draft session not found")
	ErrForbidden       = errors.New("draft belongs to another user")
	ErrGigNotFound     = errors.New("gig not found")
)

// ValidationError blocks a submission; Errors maps field keys to messages.
type ValidationError struct {
	Errors gigdraft.Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("draft is invalid: %d field(s) need attention", len(e.Errors))
}
