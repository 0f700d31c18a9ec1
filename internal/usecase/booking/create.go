package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sharpfade/booking-api/internal/audit"
	domain "github.com/sharpfade/booking-api/internal/domain/booking"
	"github.com/sharpfade/booking-api/internal/domain/schedule"
	"github.com/sharpfade/booking-api/internal/httperr"
	"github.com/sharpfade/booking-api/internal/metrics"
	"github.com/sharpfade/booking-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	BarberID  uint
	ServiceID uint

	Customer domain.CustomerRef

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string

	// Client-generated UUID so a retry after a timeout can be told
	// apart from a new booking. Required for self-service creates.
	IdempotencyKey string

	// WalkIn marks staff creation for a customer physically present:
	// the appointment starts Confirmed and skips the minimum-advance
	// rule (the plain future check still applies).
	WalkIn bool

	// Reference instant; zero means wall clock.
	Now time.Time
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo       domain.Repository
	audit      *audit.Dispatcher
	loc        *time.Location
	minAdvance time.Duration
}

func NewCreateAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	loc *time.Location,
	minAdvanceMin int,
) *CreateAppointment {
	if minAdvanceMin < 0 {
		minAdvanceMin = 0
	}
	return &CreateAppointment{
		repo:       repo,
		audit:      auditDisp,
		loc:        loc,
		minAdvance: time.Duration(minAdvanceMin) * time.Minute,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute validates the request and commits the appointment. The
// conflict re-check and the insert run inside one per-barber atomic
// scope; a client-perceived free slot is never trusted. replayed is
// true when the idempotency key matched an earlier commit and the
// existing appointment is returned unchanged.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateInput,
) (ap *models.Appointment, replayed bool, err error) {

	if err := in.Customer.Validate(); err != nil {
		return nil, false, err
	}

	if in.IdempotencyKey == "" {
		if !in.WalkIn {
			return nil, false, httperr.ErrBusiness("missing_idempotency_key")
		}
	} else if _, err := uuid.Parse(in.IdempotencyKey); err != nil {
		return nil, false, httperr.ErrBusiness("invalid_idempotency_key")
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, uc.loc)
	if err != nil {
		return nil, false, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().In(uc.loc)
	}

	if in.WalkIn {
		if !start.After(now) {
			return nil, false, httperr.ErrBusiness("in_the_past")
		}
	} else if start.Before(now.Add(uc.minAdvance)) {
		return nil, false, httperr.ErrBusiness("too_soon")
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil || svc == nil || !svc.Active || svc.DurationMin <= 0 {
		return nil, false, httperr.ErrBusiness("service_not_found")
	}

	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		return nil, false, httperr.ErrBusiness("barber_not_found")
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	entry, err := uc.repo.GetScheduleEntry(ctx, in.BarberID, int(start.Weekday()))
	if err != nil {
		return nil, false, err
	}
	w, ok := schedule.ResolveWindow(entry, start)
	if !ok || start.Before(w.Start) || end.After(w.End) {
		return nil, false, httperr.ErrBusiness("outside_working_hours")
	}

	status := domain.StatusPending
	if in.WalkIn {
		status = domain.StatusConfirmed
	}

	err = uc.repo.WithBarberLock(ctx, in.BarberID, func(tx domain.Repository) error {
		if in.IdempotencyKey != "" {
			existing, err := tx.GetAppointmentByKey(ctx, in.IdempotencyKey)
			if err != nil {
				return err
			}
			if existing != nil {
				ap = existing
				replayed = true
				return nil
			}
		}

		busy, err := tx.ListActiveForBarberBetween(
			ctx,
			in.BarberID,
			start.Add(-conflictScanPad),
			end.Add(conflictScanPad),
		)
		if err != nil {
			return err
		}

		if c := domain.FindConflict(start, end, svc.BufferMin, busy, 0); c != nil {
			return httperr.ErrSlotUnavailable(
				in.BarberID,
				start,
				domain.EffectiveEnd(end, svc.BufferMin),
			)
		}

		created := &models.Appointment{
			BarberID:   in.BarberID,
			ServiceID:  svc.ID,
			StartTime:  start,
			EndTime:    end,
			Status:     string(status),
			Notes:      in.Notes,
			TotalPrice: svc.Price,
		}
		in.Customer.ApplyTo(created)
		if in.IdempotencyKey != "" {
			key := in.IdempotencyKey
			created.IdempotencyKey = &key
		}

		if err := tx.CreateAppointment(ctx, created); err != nil {
			return err
		}

		ap = created
		return nil
	})

	if err != nil {
		// The exclusion constraint is the backstop for the advisory
		// lock; a violation means another writer took the slot first.
		if httperr.IsExclusionConflict(err) {
			err = httperr.ErrSlotUnavailable(in.BarberID, start, end)
		}
		if httperr.IsBusiness(err, httperr.CodeSlotUnavailable) {
			metrics.IncSlotConflict()
		}
		return nil, false, err
	}

	if !replayed {
		metrics.IncAppointmentCreated(ap.Status)
		uc.audit.Dispatch(audit.Event{
			UserID:   auditActor(in.Customer),
			Action:   "appointment_created",
			Entity:   "appointment",
			EntityID: &ap.ID,
		})
	}

	return ap, replayed, nil
}

func auditActor(ref domain.CustomerRef) *uint {
	if id, ok := ref.Registered(); ok {
		return &id
	}
	return nil
}
