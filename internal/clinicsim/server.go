// Package clinicsim is a small stand-in for the clinic server. It implements
// the three endpoints the booking form talks to, backed by an in-memory
// store, so the form can be exercised end to end without the real backend.
package clinicsim

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/clinic-booking-form/internal/schedule"
	"github.com/wolfman30/clinic-booking-form/pkg/logging"
)

// Server serves the clinic booking endpoints.
type Server struct {
	store   *Store
	log     *logging.Logger
	metrics *serverMetrics
}

type serverMetrics struct {
	requestsTotal *prometheus.CounterVec
}

func newServerMetrics(reg prometheus.Registerer) *serverMetrics {
	m := &serverMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicsim",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requests served by endpoint and result",
		}, []string{"endpoint", "result"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal)
	return m
}

func (m *serverMetrics) observe(endpoint, result string) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(endpoint, result).Inc()
}

// NewServer creates a simulator around the given store. A nil registry uses
// the default Prometheus registerer.
func NewServer(store *Store, logger *logging.Logger, reg prometheus.Registerer) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	return &Server{
		store:   store,
		log:     logger,
		metrics: newServerMetrics(reg),
	}
}

// Routes returns the simulator's HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/consultas", func(r chi.Router) {
		r.Get("/medicos_por_especialidade/", s.handleDoctors)
		r.Get("/horarios_disponiveis/", s.handleSlots)
		r.Post("/nova/", s.handleBook)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type doctorPayload struct {
	ID            int64  `json:"id"`
	Nome          string `json:"nome"`
	Especialidade string `json:"especialidade"`
}

func (s *Server) handleDoctors(w http.ResponseWriter, r *http.Request) {
	specialtyID, err := strconv.ParseInt(r.URL.Query().Get("especialidade_id"), 10, 64)
	if err != nil {
		s.metrics.observe("doctors", "bad_request")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "especialidade_id inválido"})
		return
	}

	doctors := s.store.DoctorsBySpecialty(specialtyID)
	payload := make([]doctorPayload, 0, len(doctors))
	for _, d := range doctors {
		payload = append(payload, doctorPayload{ID: d.ID, Nome: d.Nome, Especialidade: d.Especialidade})
	}

	s.metrics.observe("doctors", "ok")
	writeJSON(w, http.StatusOK, map[string]any{"medicos": payload})
}

func (s *Server) handleSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, err := strconv.ParseInt(r.URL.Query().Get("medico_id"), 10, 64)
	date := r.URL.Query().Get("data")
	if err != nil || date == "" {
		s.metrics.observe("slots", "bad_request")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "medico_id e data são obrigatórios"})
		return
	}

	free := s.store.AvailableSlots(doctorID, date)
	if free == nil {
		free = []string{}
	}

	s.metrics.observe("slots", "ok")
	writeJSON(w, http.StatusOK, map[string]any{"horarios": free})
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-Requested-With") != "XMLHttpRequest" {
		s.metrics.observe("book", "bad_request")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "requisição inválida"})
		return
	}
	if err := r.ParseForm(); err != nil {
		s.metrics.observe("book", "bad_request")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "requisição inválida"})
		return
	}

	errs := map[string][]string{}

	doctorField := r.PostFormValue("medico")
	doctorID, err := strconv.ParseInt(doctorField, 10, 64)
	var doctor DoctorRecord
	if doctorField == "" {
		errs["medico"] = append(errs["medico"], "Este campo é obrigatório.")
	} else if err != nil {
		errs["medico"] = append(errs["medico"], "Faça uma escolha válida.")
	} else {
		var ok bool
		doctor, ok = s.store.Doctor(doctorID)
		if !ok {
			errs["medico"] = append(errs["medico"], "Faça uma escolha válida.")
		}
	}

	date, slot, ok := splitDateTime(r.PostFormValue("data_hora"))
	if !ok {
		errs["data_hora"] = append(errs["data_hora"], "Informe uma data e hora válidas.")
	} else if !schedule.Contains(slot) {
		errs["hora"] = append(errs["hora"], "Faça uma escolha válida.")
	}

	convenio := ""
	if r.PostFormValue("usa_convenio") == "on" {
		planField := r.PostFormValue("convenio")
		planID, err := strconv.ParseInt(planField, 10, 64)
		if planField == "" || err != nil {
			errs["convenio"] = append(errs["convenio"], "Selecione o convênio.")
		} else if plan, ok := s.store.Plan(planID); ok {
			convenio = plan.Nome
		} else {
			errs["convenio"] = append(errs["convenio"], "Faça uma escolha válida.")
		}
	}

	if len(errs) > 0 {
		s.metrics.observe("book", "rejected")
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "errors": errs})
		return
	}

	paciente := r.PostFormValue("paciente")
	if paciente == "" {
		paciente = "Paciente Demo"
	}

	appt, booked := s.store.Book(paciente, doctorID, date, slot, convenio)
	if !booked {
		s.metrics.observe("book", "conflict")
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"ok":     false,
			"errors": map[string][]string{"hora": {"Este horário já está reservado. Escolha outro horário."}},
		})
		return
	}

	s.log.Info("appointment booked",
		"appointment_id", appt.ID,
		"appointment_ref", appt.Ref.String(),
		"doctor_id", appt.DoctorID,
		"date", appt.Date,
		"slot", appt.Slot,
	)
	s.metrics.observe("book", "ok")
	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"consulta": map[string]any{
			"id":       appt.ID,
			"paciente": appt.Paciente,
			"medico":   doctor.Nome,
			"data":     formatDateBR(appt.Date),
			"hora":     appt.Slot,
			"convenio": appt.Convenio,
		},
	})
}

// splitDateTime parses the combined "YYYY-MM-DD HH:MM" field.
func splitDateTime(v string) (date, slot string, ok bool) {
	t, err := time.Parse("2006-01-02 15:04", v)
	if err != nil {
		return "", "", false
	}
	return t.Format("2006-01-02"), t.Format("15:04"), true
}

// formatDateBR renders an ISO date as dd/mm/yyyy for the confirmation.
func formatDateBR(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}

// requestLogger emits structured logs for every request served.
func requestLogger(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := r.Header.Get("X-Request-ID")
			if reqID == "" {
				reqID = uuid.NewString()
			}
			next.ServeHTTP(w, r)
			logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", reqID,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
