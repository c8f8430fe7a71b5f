package presence

import (
	"context"
	"time"

	"github.com/legwalet/le-barber/internal/models"
	"github.com/legwalet/le-barber/internal/store"
)

// Tracker maintains the persisted online flags and answers the
// "who is online" query. The hub announces transitions; the tracker
// owns the stored state.
type Tracker struct {
	store      *store.Store
	hub        *Hub
	staleAfter time.Duration
}

func NewTracker(st *store.Store, hub *Hub, staleAfter time.Duration) *Tracker {
	return &Tracker{store: st, hub: hub, staleAfter: staleAfter}
}

// MarkOnline flags the user online, stamps lastSeen and announces the
// transition.
func (t *Tracker) MarkOnline(ctx context.Context, userID string) error {
	online := true
	now := time.Now()
	if _, err := t.store.UpdateUser(ctx, userID, store.UserPatch{
		Online:     &online,
		LastSeenAt: &now,
	}); err != nil {
		return err
	}
	t.hub.Broadcast(Event{Type: EventUserOnline, UserID: userID})
	return nil
}

// MarkOffline flags the user offline and announces the transition.
func (t *Tracker) MarkOffline(ctx context.Context, userID string) error {
	online := false
	now := time.Now()
	if _, err := t.store.UpdateUser(ctx, userID, store.UserPatch{
		Online:     &online,
		LastSeenAt: &now,
	}); err != nil {
		return err
	}
	t.hub.Broadcast(Event{Type: EventUserOffline, UserID: userID})
	return nil
}

// Touch refreshes lastSeen without announcing anything. Called from the
// socket loop on activity.
func (t *Tracker) Touch(ctx context.Context, userID string) error {
	now := time.Now()
	_, err := t.store.UpdateUser(ctx, userID, store.UserPatch{LastSeenAt: &now})
	return err
}

// OnlineClients lists clients whose online flag is set and whose
// lastSeen is fresh. A flag left dangling by a dead connection ages out
// of the result instead of lingering forever.
func (t *Tracker) OnlineClients(ctx context.Context) ([]models.User, error) {
	users, err := t.store.GetUsersByType(ctx, models.UserTypeClient)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-t.staleAfter)
	online := make([]models.User, 0, len(users))
	for _, u := range users {
		if !u.Online {
			continue
		}
		if u.LastSeenAt != nil && u.LastSeenAt.Before(cutoff) {
			continue
		}
		online = append(online, u)
	}
	return online, nil
}
