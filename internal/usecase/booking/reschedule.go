package booking

import (
	"context"
	"time"

	"github.com/sharpfade/booking-api/internal/audit"
	domain "github.com/sharpfade/booking-api/internal/domain/booking"
	"github.com/sharpfade/booking-api/internal/domain/schedule"
	"github.com/sharpfade/booking-api/internal/httperr"
	"github.com/sharpfade/booking-api/internal/models"
)

type Reschedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReschedule(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
) *Reschedule {
	return &Reschedule{
		repo:  repo,
		audit: auditDisp,
	}
}

// Execute moves an active appointment to a new barber/start, keeping
// its status. The conflict check excludes the appointment itself and
// runs inside the target barber's atomic scope, so the move is
// all-or-nothing.
func (uc *Reschedule) Execute(
	ctx context.Context,
	actorID uint,
	appointmentID uint,
	newBarberID uint,
	newStart time.Time,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if !domain.IsActive(domain.Status(ap.Status)) {
		return nil, httperr.ErrBusiness("appointment_not_active")
	}

	svc, err := uc.repo.GetService(ctx, ap.ServiceID)
	if err != nil || svc == nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	if _, err := uc.repo.GetBarber(ctx, newBarberID); err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	newEnd := newStart.Add(time.Duration(svc.DurationMin) * time.Minute)

	// A slot outside the target barber's working window is just as
	// unavailable as a taken one.
	entry, err := uc.repo.GetScheduleEntry(ctx, newBarberID, int(newStart.Weekday()))
	if err != nil {
		return nil, err
	}
	w, ok := schedule.ResolveWindow(entry, newStart)
	if !ok || newStart.Before(w.Start) || newEnd.After(w.End) {
		return nil, httperr.ErrSlotUnavailable(newBarberID, newStart, newEnd)
	}

	err = uc.repo.WithBarberLock(ctx, newBarberID, func(tx domain.Repository) error {
		// Re-read under the lock: a cancel or no-show committed after
		// the pre-check must not be overwritten by a stale struct.
		cur, err := tx.GetAppointment(ctx, ap.ID)
		if err != nil {
			return httperr.ErrBusiness("appointment_not_found")
		}
		if !domain.IsActive(domain.Status(cur.Status)) {
			return httperr.ErrBusiness("appointment_not_active")
		}

		busy, err := tx.ListActiveForBarberBetween(
			ctx,
			newBarberID,
			newStart.Add(-conflictScanPad),
			newEnd.Add(conflictScanPad),
		)
		if err != nil {
			return err
		}

		if c := domain.FindConflict(newStart, newEnd, svc.BufferMin, busy, cur.ID); c != nil {
			return httperr.ErrSlotUnavailable(
				newBarberID,
				newStart,
				domain.EffectiveEnd(newEnd, svc.BufferMin),
			)
		}

		cur.BarberID = newBarberID
		cur.StartTime = newStart
		cur.EndTime = newEnd

		if err := tx.UpdateAppointment(ctx, cur); err != nil {
			return err
		}

		ap = cur
		return nil
	})

	if err != nil {
		if httperr.IsExclusionConflict(err) {
			err = httperr.ErrSlotUnavailable(newBarberID, newStart, newEnd)
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
