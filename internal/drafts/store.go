// Package drafts keeps gig drafts between requests. Each editing session owns
// exactly one draft; a session expires when it has not been touched for the
// configured TTL.
package drafts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/gigstudio/internal/gigdraft"
)

var (
	ErrNotFound = errors.New("draft session not found")
	ErrConflict = errors.New("draft session was modified concurrently")
)

type Session struct {
	ID      string    `json:"id"`
	OwnerID uuid.UUID `json:"owner_id"`
	// GigID is set when the session edits an existing gig.
	GigID     *uint          `json:"gig_id,omitempty"`
	Draft     gigdraft.Draft `json:"draft"`
	Revision  int            `json:"revision"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewSession builds an unsaved session around d.
func NewSession(d gigdraft.Draft, gigID *uint) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		OwnerID:   d.OwnerID,
		GigID:     gigID,
		Draft:     d,
		Revision:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store persists sessions. Update runs fn against the current session and
// saves the result atomically; when fn returns an error nothing is saved.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, fn func(s *Session) error) (*Session, error)
	Delete(ctx context.Context, id string) error
}
