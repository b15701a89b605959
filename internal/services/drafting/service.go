// Package drafting runs gig authoring sessions: it applies form actions to a
// stored draft, attaches uploads, and turns a valid draft into a gig.
package drafting

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/Windi-Fikriyansyah/gigstudio/internal/drafts"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/gigdraft"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/models"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/realtime"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/repository"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/storage"
)

// GigStore is the part of the gig repository a submission needs.
type GigStore interface {
	Create(ctx context.Context, gig *models.Gig) error
	Update(ctx context.Context, gig *models.Gig) error
	FindByID(ctx context.Context, id uint) (*models.Gig, error)
}

type Notifier interface {
	GigSubmitted(ev realtime.GigEvent)
}

type DraftService struct {
	Store    drafts.Store
	Gigs     GigStore
	Uploader storage.Uploader
	Notifier Notifier
	// EncodeID turns a gig id into its public form for events.
	EncodeID func(id uint) (string, error)

	richText  *bluemonday.Policy
	plainText *bluemonday.Policy
}

func NewDraftService(store drafts.Store, gigs GigStore, uploader storage.Uploader, notifier Notifier, encodeID func(uint) (string, error)) *DraftService {
	return &DraftService{
		Store:     store,
		Gigs:      gigs,
		Uploader:  uploader,
		Notifier:  notifier,
		EncodeID:  encodeID,
		richText:  bluemonday.UGCPolicy(),
		plainText: bluemonday.StrictPolicy(),
	}
}

// Start opens a session on an empty draft.
func (s *DraftService) Start(ctx context.Context, owner uuid.UUID) (*drafts.Session, error) {
	sess := drafts.NewSession(gigdraft.New(owner), nil)
	if err := s.Store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// StartEdit opens a session on an existing gig, hydrated from its stored form.
func (s *DraftService) StartEdit(ctx context.Context, owner uuid.UUID, gigID uint) (*drafts.Session, error) {
	gig, err := s.ownedGig(ctx, owner, gigID)
	if err != nil {
		return nil, err
	}
	p, err := gig.Payload()
	if err != nil {
		return nil, fmt.Errorf("read gig %d: %w", gigID, err)
	}

	d := gigdraft.Reduce(gigdraft.New(owner), gigdraft.Hydrate(p))
	id := gig.ID
	sess := drafts.NewSession(d, &id)
	if err := s.Store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

func (s *DraftService) Get(ctx context.Context, owner uuid.UUID, sessionID string) (*drafts.Session, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, storeErr(err)
	}
	if sess.OwnerID != owner {
		return nil, ErrForbidden
	}
	return sess, nil
}

// Dispatch applies actions in order and saves the result as one revision.
func (s *DraftService) Dispatch(ctx context.Context, owner uuid.UUID, sessionID string, actions ...gigdraft.Action) (*drafts.Session, error) {
	return s.update(ctx, owner, sessionID, func(d gigdraft.Draft) gigdraft.Draft {
		return gigdraft.ReduceAll(d, actions...)
	})
}

func (s *DraftService) Validate(ctx context.Context, owner uuid.UUID, sessionID string) (gigdraft.Errors, error) {
	sess, err := s.Get(ctx, owner, sessionID)
	if err != nil {
		return nil, err
	}
	return gigdraft.Validate(s.sanitize(sess.Draft)), nil
}

func (s *DraftService) Discard(ctx context.Context, owner uuid.UUID, sessionID string) error {
	if _, err := s.Get(ctx, owner, sessionID); err != nil {
		return err
	}
	return storeErr(s.Store.Delete(ctx, sessionID))
}

// Upload stores the file, then records its URL on the draft: a cover replaces
// the current one, an image is appended. A failed upload leaves the draft as is.
func (s *DraftService) Upload(ctx context.Context, owner uuid.UUID, sessionID string, f storage.File) (*drafts.Session, string, error) {
	if _, err := s.Get(ctx, owner, sessionID); err != nil {
		return nil, "", err
	}

	f.Owner = owner
	url, err := s.Uploader.Upload(ctx, f)
	if err != nil {
		return nil, "", err
	}

	sess, err := s.update(ctx, owner, sessionID, func(d gigdraft.Draft) gigdraft.Draft {
		if f.Kind == storage.KindCover {
			return gigdraft.Reduce(d, gigdraft.SetField{Field: gigdraft.FieldCover, Value: url})
		}
		images := append(append([]string{}, d.Images...), url)
		return gigdraft.Reduce(d, gigdraft.SetField{Field: gigdraft.FieldImages, Value: images})
	})
	if err != nil {
		return nil, "", err
	}
	return sess, url, nil
}

// Submit persists a valid draft as a gig awaiting review and closes the
// session. On any failure the session is kept so the user can retry.
func (s *DraftService) Submit(ctx context.Context, owner uuid.UUID, sessionID string) (*models.Gig, error) {
	sess, err := s.Get(ctx, owner, sessionID)
	if err != nil {
		return nil, err
	}
	clean := s.sanitize(sess.Draft)
	if errs := gigdraft.Validate(clean); !errs.Empty() {
		return nil, &ValidationError{Errors: errs}
	}

	p := gigdraft.Normalize(clean)

	var gig *models.Gig
	if sess.GigID != nil {
		gig, err = s.ownedGig(ctx, owner, *sess.GigID)
		if err != nil {
			return nil, err
		}
	} else {
		gig = &models.Gig{}
	}
	if err := gig.Apply(p); err != nil {
		return nil, fmt.Errorf("build gig: %w", err)
	}
	gig.Status = models.GigStatusReview
	gig.ReviewNote = ""

	if sess.GigID != nil {
		err = s.Gigs.Update(ctx, gig)
	} else {
		err = s.Gigs.Create(ctx, gig)
	}
	if err != nil {
		return nil, fmt.Errorf("save gig: %w", err)
	}

	s.notify(gig)

	if err := s.Store.Delete(ctx, sessionID); err != nil && !errors.Is(err, drafts.ErrNotFound) {
		log.Printf("[Draft] gig %d saved but session %s not removed: %v", gig.ID, sessionID, err)
	}
	return gig, nil
}

func (s *DraftService) update(ctx context.Context, owner uuid.UUID, sessionID string, fn func(gigdraft.Draft) gigdraft.Draft) (*drafts.Session, error) {
	sess, err := s.Store.Update(ctx, sessionID, func(cur *drafts.Session) error {
		if cur.OwnerID != owner {
			return ErrForbidden
		}
		cur.Draft = fn(cur.Draft)
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return sess, nil
}

func (s *DraftService) ownedGig(ctx context.Context, owner uuid.UUID, id uint) (*models.Gig, error) {
	gig, err := s.Gigs.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrGigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load gig %d: %w", id, err)
	}
	if gig.UserID != owner {
		return nil, ErrForbidden
	}
	return gig, nil
}

// sanitize strips markup from the short fields and unsafe markup from the
// long description. A description with no text left is emptied so the
// required check sees it.
func (s *DraftService) sanitize(d gigdraft.Draft) gigdraft.Draft {
	d.Title = s.plain(d.Title)
	d.ShortTitle = s.plain(d.ShortTitle)
	d.ShortDescription = s.plain(d.ShortDescription)
	d.Description = s.richText.Sanitize(d.Description)
	if strings.TrimSpace(s.plain(d.Description)) == "" {
		d.Description = ""
	}

	for _, t := range gigdraft.Tiers {
		pkg, _ := d.Packages.Get(t)
		pkg.Title = s.plain(pkg.Title)
		pkg.Description = s.plain(pkg.Description)
		d.Packages = d.Packages.With(t, pkg)
	}

	ms := make([]gigdraft.Milestone, len(d.Milestones))
	for i, m := range d.Milestones {
		m.Title = s.plain(m.Title)
		m.Description = s.plain(m.Description)
		ms[i] = m
	}
	d.Milestones = ms
	return d
}

// plain drops tags but keeps entities like "&" readable.
func (s *DraftService) plain(v string) string {
	return html.UnescapeString(s.plainText.Sanitize(v))
}

func (s *DraftService) notify(gig *models.Gig) {
	if s.Notifier == nil {
		return
	}
	publicID := fmt.Sprint(gig.ID)
	if s.EncodeID != nil {
		enc, err := s.EncodeID(gig.ID)
		if err != nil {
			log.Printf("[Draft] encode gig id %d: %v", gig.ID, err)
			return
		}
		publicID = enc
	}
	s.Notifier.GigSubmitted(realtime.GigEvent{
		GigID:   publicID,
		OwnerID: gig.UserID,
		Title:   gig.Title,
		Status:  string(gig.Status),
		At:      time.Now(),
	})
}

func storeErr(err error) error {
	if errors.Is(err, drafts.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}
