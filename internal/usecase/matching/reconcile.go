package matching

import (
	"context"
	"log"
	"time"

	"github.com/legwalet/le-barber/internal/audit"
	domain "github.com/legwalet/le-barber/internal/domain/matching"
	"github.com/legwalet/le-barber/internal/domain/request"
	"github.com/legwalet/le-barber/internal/store"
)

// Pending requests older than this age out to expired.
const requestTTL = 48 * time.Hour

// Reconcile repairs the gaps left by the non-atomic accept path and ages
// out stale pending work. It runs on a timer next to the audit worker.
type Reconcile struct {
	repo  domain.Repository
	store *store.Store
	audit *audit.Dispatcher
}

func NewReconcile(
	repo domain.Repository,
	st *store.Store,
	audit *audit.Dispatcher,
) *Reconcile {
	return &Reconcile{
		repo:  repo,
		store: st,
		audit: audit,
	}
}

// Run sweeps on the given interval until the context ends.
func (uc *Reconcile) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("reconcile sweep stopped")
			return
		case <-ticker.C:
			uc.Sweep(ctx)
		}
	}
}

// Sweep runs one reconciliation pass.
func (uc *Reconcile) Sweep(ctx context.Context) {
	uc.repairMissingBookings(ctx)
	uc.expireStale(ctx)
}

// repairMissingBookings recreates the booking for any accepted request
// whose accept crashed between the status write and the booking write.
func (uc *Reconcile) repairMissingBookings(ctx context.Context) {
	orphans, err := uc.repo.ListAcceptedRequestsWithoutBooking(ctx)
	if err != nil {
		log.Printf("reconcile: listing orphaned requests failed: %v", err)
		return
	}

	for i := range orphans {
		req := &orphans[i]
		booking := request.BookingFromRequest(req, req.AcceptedBy)
		if err := uc.repo.CreateBooking(ctx, booking); err != nil {
			log.Printf("reconcile: recreating booking for request %s failed: %v", req.ID, err)
			continue
		}
		log.Printf("reconcile: recreated booking %s for accepted request %s", booking.ID, req.ID)

		uc.audit.Dispatch(audit.Event{
			Action:   "booking_reconciled",
			Entity:   "booking",
			EntityID: booking.ID,
		})
	}
}

func (uc *Reconcile) expireStale(ctx context.Context) {
	now := time.Now()

	if n, err := uc.repo.ExpireRequestsBefore(ctx, now.Add(-requestTTL)); err != nil {
		log.Printf("reconcile: expiring requests failed: %v", err)
	} else if n > 0 {
		log.Printf("reconcile: expired %d stale requests", n)
	}

	if n, err := uc.store.ExpireInvitations(ctx, now); err != nil {
		log.Printf("reconcile: expiring invitations failed: %v", err)
	} else if n > 0 {
		log.Printf("reconcile: expired %d invitations", n)
	}
}
