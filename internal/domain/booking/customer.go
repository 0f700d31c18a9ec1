package booking

import (
	"github.com/sharpfade/booking-api/internal/httperr"
	"github.com/sharpfade/booking-api/internal/models"
)

// CustomerRef identifies who the appointment is for: either a
// registered user or a guest (name + phone). Exactly one form is
// populated; the zero value is invalid.
type CustomerRef struct {
	userID     uint
	guestName  string
	guestPhone string
}

func RegisteredCustomer(userID uint) CustomerRef {
	return CustomerRef{userID: userID}
}

func GuestCustomer(name, phone string) CustomerRef {
	return CustomerRef{guestName: name, guestPhone: phone}
}

func (r CustomerRef) Registered() (uint, bool) {
	return r.userID, r.userID != 0
}

func (r CustomerRef) Guest() (name, phone string, ok bool) {
	return r.guestName, r.guestPhone, r.userID == 0 && r.guestName != ""
}

func (r CustomerRef) Validate() error {
	if r.userID != 0 {
		if r.guestName != "" || r.guestPhone != "" {
			return httperr.ErrBusiness("ambiguous_customer")
		}
		return nil
	}
	if r.guestName == "" || r.guestPhone == "" {
		return httperr.ErrBusiness("missing_customer")
	}
	return nil
}

// ApplyTo writes the reference onto the persistence model.
func (r CustomerRef) ApplyTo(ap *models.Appointment) {
	if id, ok := r.Registered(); ok {
		ap.CustomerID = &id
		ap.GuestName = ""
		ap.GuestPhone = ""
		return
	}
	ap.CustomerID = nil
	ap.GuestName = r.guestName
	ap.GuestPhone = r.guestPhone
}
