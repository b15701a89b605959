package realtime

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventGigSubmitted     = "gig.submitted"
	EventGigStatusChanged = "gig.status_changed"
)

type GigEvent struct {
	Type    string    `json:"type"`
	GigID   string    `json:"gig_id"`
	OwnerID uuid.UUID `json:"owner_id"`
	Title   string    `json:"title"`
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
}

// GigNotifier publishes gig lifecycle events: the owner always hears about
// their gig, admins hear about submissions waiting for review.
type GigNotifier struct {
	Hub *Hub
}

func (n GigNotifier) GigSubmitted(ev GigEvent) {
	ev.Type = EventGigSubmitted
	n.Hub.SendToUser(ev.OwnerID, ev)
	n.Hub.SendToRole("admin", ev)
}

func (n GigNotifier) GigStatusChanged(ev GigEvent) {
	ev.Type = EventGigStatusChanged
	n.Hub.SendToUser(ev.OwnerID, ev)
	if ev.Status == "published" {
		n.Hub.BroadcastJSON(ev)
	}
}
