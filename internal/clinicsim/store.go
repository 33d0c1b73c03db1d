package clinicsim

import (
	"sync"

	"github.com/google/uuid"

	"github.com/wolfman30/clinic-booking-form/internal/schedule"
)

// Specialty is a bookable medical specialty.
type Specialty struct {
	ID   int64
	Nome string
}

// DoctorRecord is a doctor offering one specialty.
type DoctorRecord struct {
	ID              int64
	Nome            string
	EspecialidadeID int64
	Especialidade   string
}

// InsurancePlan is an accepted insurance plan.
type InsurancePlan struct {
	ID   int64
	Nome string
}

// Appointment is a booked consultation.
type Appointment struct {
	ID       int64
	Ref      uuid.UUID // stable external reference for logs and audits
	Paciente string
	DoctorID int64
	Date     string // YYYY-MM-DD
	Slot     string // HH:MM
	Convenio string
}

// Store is the in-memory clinic state behind the simulator. All methods are
// safe for concurrent use.
type Store struct {
	mu           sync.Mutex
	specialties  []Specialty
	doctors      []DoctorRecord
	plans        []InsurancePlan
	appointments []Appointment
	nextID       int64
}

// NewStore creates a store seeded with a small demo clinic.
func NewStore() *Store {
	return &Store{
		specialties: []Specialty{
			{ID: 1, Nome: "Cardiologia"},
			{ID: 2, Nome: "Dermatologia"},
			{ID: 3, Nome: "Pediatria"},
		},
		doctors: []DoctorRecord{
			{ID: 1, Nome: "Ana Souza", EspecialidadeID: 1, Especialidade: "Cardiologia"},
			{ID: 2, Nome: "Bruno Lima", EspecialidadeID: 1, Especialidade: "Cardiologia"},
			{ID: 3, Nome: "Carla Nunes", EspecialidadeID: 2, Especialidade: "Dermatologia"},
			{ID: 4, Nome: "Paulo Reis", EspecialidadeID: 3, Especialidade: "Pediatria"},
		},
		plans: []InsurancePlan{
			{ID: 1, Nome: "Vida Plena"},
			{ID: 2, Nome: "Saúde Total"},
		},
		nextID: 1,
	}
}

// DoctorsBySpecialty returns the doctors offering the given specialty, in
// seed order.
func (s *Store) DoctorsBySpecialty(specialtyID int64) []DoctorRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []DoctorRecord
	for _, d := range s.doctors {
		if d.EspecialidadeID == specialtyID {
			out = append(out, d)
		}
	}
	return out
}

// Doctor returns the doctor with the given id.
func (s *Store) Doctor(id int64) (DoctorRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.doctors {
		if d.ID == id {
			return d, true
		}
	}
	return DoctorRecord{}, false
}

// Plan returns the insurance plan with the given id.
func (s *Store) Plan(id int64) (InsurancePlan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.plans {
		if p.ID == id {
			return p, true
		}
	}
	return InsurancePlan{}, false
}

// AvailableSlots returns the catalog labels still free for the doctor on the
// given day, in catalog order.
func (s *Store) AvailableSlots(doctorID int64, date string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	booked := map[string]bool{}
	for _, a := range s.appointments {
		if a.DoctorID == doctorID && a.Date == date {
			booked[a.Slot] = true
		}
	}

	var free []string
	for _, label := range schedule.Catalog() {
		if !booked[label] {
			free = append(free, label)
		}
	}
	return free
}

// Book records an appointment. It fails when the doctor already has one at
// the same date and slot.
func (s *Store) Book(paciente string, doctorID int64, date, slot, convenio string) (Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.appointments {
		if a.DoctorID == doctorID && a.Date == date && a.Slot == slot {
			return Appointment{}, false
		}
	}

	appt := Appointment{
		ID:       s.nextID,
		Ref:      uuid.New(),
		Paciente: paciente,
		DoctorID: doctorID,
		Date:     date,
		Slot:     slot,
		Convenio: convenio,
	}
	s.nextID++
	s.appointments = append(s.appointments, appt)
	return appt, true
}
