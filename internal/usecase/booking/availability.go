package booking

import (
	"context"
	"time"

	domain "github.com/sharpfade/booking-api/internal/domain/booking"
	"github.com/sharpfade/booking-api/internal/domain/schedule"
	"github.com/sharpfade/booking-api/internal/httperr"
)

// conflictScanPad widens the busy-appointment query around the window
// under evaluation so appointments whose effective window (end +
// service buffer) leaks in from outside are still fetched. Buffers are
// minutes; six hours covers any plausible configuration.
const conflictScanPad = 6 * time.Hour

type GetAvailability struct {
	repo        domain.Repository
	granularity time.Duration
}

func NewGetAvailability(repo domain.Repository, granularityMin int) *GetAvailability {
	if granularityMin <= 0 {
		granularityMin = 30
	}
	return &GetAvailability{
		repo:        repo,
		granularity: time.Duration(granularityMin) * time.Minute,
	}
}

// Execute composes the calendar window, the slot walk and the conflict
// filter. A barber with no schedule for the weekday yields an empty
// list, not an error.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil || svc == nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	entry, err := uc.repo.GetScheduleEntry(ctx, in.BarberID, int(in.Date.Weekday()))
	if err != nil {
		return nil, err
	}

	w, ok := schedule.ResolveWindow(entry, in.Date)
	if !ok {
		return []domain.TimeSlot{}, nil
	}

	duration := time.Duration(svc.DurationMin) * time.Minute
	candidates := schedule.Slots(w, duration, uc.granularity)
	if len(candidates) == 0 {
		return []domain.TimeSlot{}, nil
	}

	busy, err := uc.repo.ListActiveForBarberBetween(
		ctx,
		in.BarberID,
		w.Start.Add(-conflictScanPad),
		w.End.Add(conflictScanPad),
	)
	if err != nil {
		return nil, err
	}

	slots := make([]domain.TimeSlot, 0, len(candidates))
	for _, start := range candidates {
		if !in.Now.IsZero() && start.Before(in.Now) {
			continue
		}

		end := start.Add(duration)
		if domain.FindConflict(start, end, svc.BufferMin, busy, 0) != nil {
			continue
		}

		slots = append(slots, domain.TimeSlot{
			Start: start.Format("15:04"),
			End:   end.Format("15:04"),
		})
	}

	return slots, nil
}
