package booking

import (
	"context"
	"time"

	"github.com/sharpfade/booking-api/internal/audit"
	domain "github.com/sharpfade/booking-api/internal/domain/booking"
	"github.com/sharpfade/booking-api/internal/httperr"
	"github.com/sharpfade/booking-api/internal/models"
)

type ChangeStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewChangeStatus(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
) *ChangeStatus {
	return &ChangeStatus{
		repo:  repo,
		audit: auditDisp,
	}
}

// Execute applies one edge of the appointment state machine. Changing
// status never touches other appointments; freeing a slot is implicit
// in the appointment no longer being active.
func (uc *ChangeStatus) Execute(
	ctx context.Context,
	actorID uint,
	appointmentID uint,
	to domain.Status,
	now time.Time,
) (*models.Appointment, error) {

	if !domain.ValidStatus(to) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if now.IsZero() {
		now = time.Now()
	}

	if err := domain.Transition(ap, to, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "appointment_" + string(to),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
