package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// AppointmentMemoryRepository guarda tudo em memória. A exclusão por barbeiro
// é um semáforo por barbeiro mantido durante toda a InBarberTx; as escritas
// ficam em espera e só são aplicadas se fn terminar sem erro.
type AppointmentMemoryRepository struct {
	mu sync.RWMutex

	users        map[uint]models.User
	barbers      map[uint]models.Barber
	services     map[uint]models.Service
	schedules    map[uint]map[string]models.BarberSchedule
	appointments map[uint]models.Appointment
	lastID       uint

	locksMu     sync.Mutex
	locks       map[uint]chan struct{}
	lockTimeout time.Duration
}

func NewAppointmentMemoryRepository(lockTimeout time.Duration) *AppointmentMemoryRepository {
	return &AppointmentMemoryRepository{
		users:        make(map[uint]models.User),
		barbers:      make(map[uint]models.Barber),
		services:     make(map[uint]models.Service),
		schedules:    make(map[uint]map[string]models.BarberSchedule),
		appointments: make(map[uint]models.Appointment),
		locks:        make(map[uint]chan struct{}),
		lockTimeout:  lockTimeout,
	}
}

// --------------------------------------------------
// Seed
// --------------------------------------------------

func (r *AppointmentMemoryRepository) AddUser(u models.User) models.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	u.ID = r.nextID()
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	r.users[u.ID] = u
	return u
}

func (r *AppointmentMemoryRepository) AddBarber(b models.Barber) models.Barber {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.nextID()
	b.CreatedAt, b.UpdatedAt = time.Now(), time.Now()
	b.User = r.users[b.UserID]
	r.barbers[b.ID] = b
	return b
}

func (r *AppointmentMemoryRepository) AddService(s models.Service) models.Service {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = r.nextID()
	s.CreatedAt, s.UpdatedAt = time.Now(), time.Now()
	r.services[s.ID] = s
	return s
}

func (r *AppointmentMemoryRepository) PutSchedule(s models.BarberSchedule) models.BarberSchedule {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.putSchedule(s)
}

// PutAppointment grava direto, sem checar colisão (fixtures).
func (r *AppointmentMemoryRepository) PutAppointment(ap models.Appointment) models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap.ID = r.nextID()
	ap.CreatedAt, ap.UpdatedAt = time.Now(), time.Now()
	r.appointments[ap.ID] = ap
	return ap
}

// Count devolve quantos agendamentos existem (para testes).
func (r *AppointmentMemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.appointments)
}

func (r *AppointmentMemoryRepository) putSchedule(s models.BarberSchedule) models.BarberSchedule {
	days, ok := r.schedules[s.BarberID]
	if !ok {
		days = make(map[string]models.BarberSchedule)
		r.schedules[s.BarberID] = days
	}

	if prev, ok := days[s.DayOfWeek]; ok {
		s.ID = prev.ID
		s.CreatedAt = prev.CreatedAt
	} else {
		s.ID = r.nextID()
		s.CreatedAt = time.Now()
	}
	s.UpdatedAt = time.Now()
	days[s.DayOfWeek] = s
	return s
}

// chamado com mu travado
func (r *AppointmentMemoryRepository) nextID() uint {
	r.lastID++
	return r.lastID
}

// --------------------------------------------------
// User / Catalog / Barber
// --------------------------------------------------

func (r *AppointmentMemoryRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *AppointmentMemoryRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.services[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *AppointmentMemoryRepository) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.barbers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	b.User = r.users[b.UserID]
	return &b, nil
}

func (r *AppointmentMemoryRepository) GetBarberByUser(ctx context.Context, userID uint) (*models.Barber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.barbers {
		if b.UserID == userID {
			b.User = r.users[b.UserID]
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *AppointmentMemoryRepository) ListBarbers(ctx context.Context) ([]models.Barber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Barber, 0, len(r.barbers))
	for _, b := range r.barbers {
		b.User = r.users[b.UserID]
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *AppointmentMemoryRepository) GetSchedule(ctx context.Context, barberID uint, day string) (*models.BarberSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.getSchedule(barberID, day), nil
}

func (r *AppointmentMemoryRepository) getSchedule(barberID uint, day string) *models.BarberSchedule {
	s, ok := r.schedules[barberID][day]
	if !ok {
		return nil
	}
	return &s
}

func (r *AppointmentMemoryRepository) ListSchedules(ctx context.Context, barberID uint) ([]models.BarberSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.BarberSchedule, 0, len(r.schedules[barberID]))
	for _, s := range r.schedules[barberID] {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *AppointmentMemoryRepository) ReplaceSchedules(ctx context.Context, barberID uint, rows []models.BarberSchedule) error {
	release, err := r.acquire(ctx, barberID)
	if err != nil {
		return err
	}
	defer release()

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.schedules, barberID)
	for _, row := range rows {
		row.BarberID = barberID
		r.putSchedule(row)
	}
	return nil
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentMemoryRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ap, nil
}

func (r *AppointmentMemoryRepository) ListOccupied(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.overlapping(nil, barberID, start, end, domain.ActiveStatuses), nil
}

func (r *AppointmentMemoryRepository) ListAppointments(ctx context.Context, f domain.AppointmentFilter) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if f.BarberID != 0 && ap.BarberID != f.BarberID {
			continue
		}
		if f.ClientID != 0 && ap.ClientID != f.ClientID {
			continue
		}
		if len(f.Statuses) > 0 && !hasStatus(f.Statuses, ap.Status) {
			continue
		}
		if !f.From.IsZero() && ap.StartTime.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !ap.StartTime.Before(f.To) {
			continue
		}

		ap.Client = r.users[ap.ClientID]
		ap.Barber = r.barbers[ap.BarberID]
		ap.Barber.User = r.users[ap.Barber.UserID]
		ap.Service = r.services[ap.ServiceID]
		out = append(out, ap)
	}

	sortByStart(out)
	return out, nil
}

// overlapping lê o estado confirmado sobreposto pelas escritas pendentes de tx.
// chamado com mu travado para leitura
func (r *AppointmentMemoryRepository) overlapping(
	tx *memoryBookingTx,
	barberID uint,
	start time.Time,
	end time.Time,
	statuses []domain.Status,
) []models.Appointment {

	want := domain.Interval{Start: start, End: end}
	var out []models.Appointment

	consider := func(ap models.Appointment) {
		if ap.BarberID != barberID || !hasStatus(statuses, ap.Status) {
			return
		}
		if domain.Occupies(&ap).Overlaps(want) {
			out = append(out, ap)
		}
	}

	for id, ap := range r.appointments {
		if tx != nil {
			if staged, ok := tx.updates[id]; ok {
				ap = staged
			}
		}
		consider(ap)
	}
	if tx != nil {
		for _, ap := range tx.inserts {
			consider(ap)
		}
	}

	sortByStart(out)
	return out
}

// --------------------------------------------------
// Barber transaction
// --------------------------------------------------

func (r *AppointmentMemoryRepository) InBarberTx(
	ctx context.Context,
	barberID uint,
	fn func(ctx context.Context, tx domain.BookingTx) error,
) error {

	release, err := r.acquire(ctx, barberID)
	if err != nil {
		return err
	}
	defer release()

	tx := &memoryBookingTx{
		repo:    r,
		updates: make(map[uint]models.Appointment),
	}

	if err := fn(ctx, tx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ap := range tx.inserts {
		r.appointments[ap.ID] = ap
	}
	for id, ap := range tx.updates {
		r.appointments[id] = ap
	}
	return nil
}

func (r *AppointmentMemoryRepository) acquire(ctx context.Context, barberID uint) (func(), error) {
	r.locksMu.Lock()
	sem, ok := r.locks[barberID]
	if !ok {
		sem = make(chan struct{}, 1)
		r.locks[barberID] = sem
	}
	r.locksMu.Unlock()

	var timeout <-chan time.Time
	if r.lockTimeout > 0 {
		timer := time.NewTimer(r.lockTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case sem <- struct{}{}:
		return func() { <-sem }, nil
	case <-timeout:
		return nil, fmt.Errorf("%w: barber %d", domain.ErrLockTimeout, barberID)
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", domain.ErrLockTimeout, ctx.Err())
	}
}

type memoryBookingTx struct {
	repo    *AppointmentMemoryRepository
	inserts []models.Appointment
	updates map[uint]models.Appointment
}

func (t *memoryBookingTx) GetSchedule(ctx context.Context, barberID uint, day string) (*models.BarberSchedule, error) {
	t.repo.mu.RLock()
	defer t.repo.mu.RUnlock()

	return t.repo.getSchedule(barberID, day), nil
}

func (t *memoryBookingTx) FindOverlapping(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
	statuses []domain.Status,
	lock bool,
) ([]models.Appointment, error) {

	t.repo.mu.RLock()
	defer t.repo.mu.RUnlock()

	// a trava do barbeiro já está com esta transação; lock não muda nada aqui
	return t.repo.overlapping(t, barberID, start, end, statuses), nil
}

func (t *memoryBookingTx) InsertAppointment(ctx context.Context, ap *models.Appointment) error {
	t.repo.mu.Lock()
	ap.ID = t.repo.nextID()
	t.repo.mu.Unlock()

	now := time.Now()
	ap.CreatedAt, ap.UpdatedAt = now, now
	t.inserts = append(t.inserts, *ap)
	return nil
}

func (t *memoryBookingTx) GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error) {
	if ap, ok := t.updates[id]; ok {
		return &ap, nil
	}

	t.repo.mu.RLock()
	defer t.repo.mu.RUnlock()

	ap, ok := t.repo.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ap, nil
}

func (t *memoryBookingTx) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	ap.UpdatedAt = time.Now()
	t.updates[ap.ID] = *ap
	return nil
}

func hasStatus(statuses []domain.Status, s string) bool {
	for _, st := range statuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

func sortByStart(apps []models.Appointment) {
	sort.Slice(apps, func(i, j int) bool {
		if apps[i].StartTime.Equal(apps[j].StartTime) {
			return apps[i].ID < apps[j].ID
		}
		return apps[i].StartTime.Before(apps[j].StartTime)
	})
}

// Compile-time check
var _ domain.Repository = (*AppointmentMemoryRepository)(nil)
