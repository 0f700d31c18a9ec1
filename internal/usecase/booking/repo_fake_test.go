package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/sharpfade/booking-api/internal/domain/booking"
	"github.com/sharpfade/booking-api/internal/models"
)

// fakeRepo is an in-memory domain.Repository. WithBarberLock serializes
// writers per barber with a mutex, mirroring the advisory-lock scope.
type fakeRepo struct {
	mu sync.Mutex

	users        map[uint]*models.User
	services     map[uint]*models.Service
	schedule     map[uint]map[int]models.WeeklySchedule
	appointments map[uint]*models.Appointment
	nextID       uint

	lockMu      sync.Mutex
	barberLocks map[uint]*sync.Mutex
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:        map[uint]*models.User{},
		services:     map[uint]*models.Service{},
		schedule:     map[uint]map[int]models.WeeklySchedule{},
		appointments: map[uint]*models.Appointment{},
		barberLocks:  map[uint]*sync.Mutex{},
	}
}

func (r *fakeRepo) addBarber(id uint, name string) {
	r.users[id] = &models.User{ID: id, Name: name, Role: models.RoleBarber}
}

func (r *fakeRepo) addService(svc models.Service) {
	cp := svc
	r.services[svc.ID] = &cp
}

func (r *fakeRepo) setWorkday(barberID uint, weekday int, start, end string) {
	if r.schedule[barberID] == nil {
		r.schedule[barberID] = map[int]models.WeeklySchedule{}
	}
	r.schedule[barberID][weekday] = models.WeeklySchedule{
		BarberID:  barberID,
		Weekday:   weekday,
		StartTime: start,
		EndTime:   end,
	}
}

func (r *fakeRepo) addAppointment(ap models.Appointment) uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ap.ID == 0 {
		r.nextID++
		ap.ID = r.nextID
	} else if ap.ID > r.nextID {
		r.nextID = ap.ID
	}
	cp := ap
	r.appointments[cp.ID] = &cp
	return cp.ID
}

// --------------------------------------------------

func (r *fakeRepo) GetBarber(_ context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || (u.Role != models.RoleBarber && u.Role != models.RoleAdmin) {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	svc, ok := r.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *svc
	return &cp, nil
}

func (r *fakeRepo) GetScheduleEntry(_ context.Context, barberID uint, weekday int) (*models.WeeklySchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.schedule[barberID][weekday]
	if !ok {
		return nil, nil
	}
	cp := entry
	return &cp, nil
}

func (r *fakeRepo) ListSchedule(_ context.Context, barberID uint) ([]models.WeeklySchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.WeeklySchedule, 0, len(r.schedule[barberID]))
	for _, entry := range r.schedule[barberID] {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out, nil
}

func (r *fakeRepo) ReplaceSchedule(_ context.Context, barberID uint, entries []models.WeeklySchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schedule[barberID] = map[int]models.WeeklySchedule{}
	for _, entry := range entries {
		entry.BarberID = barberID
		r.schedule[barberID][entry.Weekday] = entry
	}
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ap
	return &cp, nil
}

func (r *fakeRepo) GetAppointmentByKey(_ context.Context, key string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ap := range r.appointments {
		if ap.IdempotencyKey != nil && *ap.IdempotencyKey == key {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	ap.ID = r.nextID
	cp := *ap
	r.appointments[cp.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[ap.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *ap
	r.appointments[cp.ID] = &cp
	return nil
}

func (r *fakeRepo) ListActiveForBarberBetween(_ context.Context, barberID uint, from, to time.Time) ([]models.Appointment, error) {
	return r.listForBarber(barberID, from, to, true), nil
}

func (r *fakeRepo) ListForBarberPeriod(_ context.Context, barberID uint, from, to time.Time) ([]models.Appointment, error) {
	return r.listForBarber(barberID, from, to, false), nil
}

func (r *fakeRepo) listForBarber(barberID uint, from, to time.Time, activeOnly bool) []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID != barberID {
			continue
		}
		if activeOnly && !domain.IsActive(domain.Status(ap.Status)) {
			continue
		}
		if !ap.StartTime.Before(to) || !ap.EndTime.After(from) {
			continue
		}
		cp := *ap
		if svc, ok := r.services[cp.ServiceID]; ok {
			cp.Service = *svc
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func (r *fakeRepo) WithBarberLock(_ context.Context, barberID uint, fn func(domain.Repository) error) error {
	r.lockMu.Lock()
	lock, ok := r.barberLocks[barberID]
	if !ok {
		lock = &sync.Mutex{}
		r.barberLocks[barberID] = lock
	}
	r.lockMu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	return fn(r)
}
