package booking

import (
	"context"
	"time"

	"github.com/sharpfade/booking-api/internal/audit"
	domain "github.com/sharpfade/booking-api/internal/domain/booking"
	"github.com/sharpfade/booking-api/internal/httperr"
	"github.com/sharpfade/booking-api/internal/metrics"
)

type Policy string

const (
	PolicyCancel Policy = "cancel"
	PolicyMove   Policy = "move"
)

type EmergencyInput struct {
	BarberID uint

	// Midnight of the affected day in the shop timezone.
	Date time.Time

	Policy Policy

	// Receiving barber for the move policy.
	TargetBarberID uint

	Now time.Time
}

type FailedAppointment struct {
	AppointmentID uint   `json:"appointment_id"`
	Reason        string `json:"reason"`
}

// Report is the normal return value of an emergency run. A non-empty
// Failed list is the expected outcome of the best-effort move policy,
// not an error.
type Report struct {
	ProcessedCount int                 `json:"processed_count"`
	Failed         []FailedAppointment `json:"failed"`
}

type HandleEmergency struct {
	repo         domain.Repository
	changeStatus *ChangeStatus
	reschedule   *Reschedule
	audit        *audit.Dispatcher
}

func NewHandleEmergency(
	repo domain.Repository,
	changeStatus *ChangeStatus,
	reschedule *Reschedule,
	auditDisp *audit.Dispatcher,
) *HandleEmergency {
	return &HandleEmergency{
		repo:         repo,
		changeStatus: changeStatus,
		reschedule:   reschedule,
		audit:        auditDisp,
	}
}

// Execute bulk-resolves every active appointment the barber holds on
// the date. Appointments are processed in start-time order so the
// report is reproducible. The engine only ever calls the lifecycle
// operations; each one is individually atomic, and a per-appointment
// slot_unavailable under the move policy is recorded and skipped
// rather than aborting the batch.
func (uc *HandleEmergency) Execute(
	ctx context.Context,
	actorID uint,
	in EmergencyInput,
) (Report, error) {

	report := Report{Failed: []FailedAppointment{}}

	switch in.Policy {
	case PolicyCancel:
	case PolicyMove:
		if in.TargetBarberID == 0 || in.TargetBarberID == in.BarberID {
			return report, httperr.ErrBusiness("invalid_target_barber")
		}
		if _, err := uc.repo.GetBarber(ctx, in.TargetBarberID); err != nil {
			return report, httperr.ErrBusiness("barber_not_found")
		}
	default:
		return report, httperr.ErrBusiness("invalid_policy")
	}

	dayStart := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		0, 0, 0, 0,
		in.Date.Location(),
	)
	dayEnd := dayStart.Add(24 * time.Hour)

	active, err := uc.repo.ListActiveForBarberBetween(ctx, in.BarberID, dayStart, dayEnd)
	if err != nil {
		return report, err
	}

	for _, ap := range active {
		switch in.Policy {
		case PolicyCancel:
			// Cancelling an active appointment is always legal; a
			// failure here is a system fault, not a business outcome.
			if _, err := uc.changeStatus.Execute(ctx, actorID, ap.ID, domain.StatusCancelled, in.Now); err != nil {
				return report, err
			}
			report.ProcessedCount++
			metrics.IncEmergencyOutcome(string(in.Policy), "cancelled")

		case PolicyMove:
			_, err := uc.reschedule.Execute(ctx, actorID, ap.ID, in.TargetBarberID, ap.StartTime)
			if err != nil {
				if be, ok := httperr.AsBusiness(err); ok {
					report.Failed = append(report.Failed, FailedAppointment{
						AppointmentID: ap.ID,
						Reason:        be.Code,
					})
					metrics.IncEmergencyOutcome(string(in.Policy), "failed")
					continue
				}
				return report, err
			}
			report.ProcessedCount++
			metrics.IncEmergencyOutcome(string(in.Policy), "moved")
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "emergency_" + string(in.Policy),
		Entity:   "barber",
		EntityID: &in.BarberID,
		Metadata: map[string]any{
			"date":      dayStart.Format("2006-01-02"),
			"processed": report.ProcessedCount,
			"failed":    len(report.Failed),
		},
	})

	return report, nil
}
