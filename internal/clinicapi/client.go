package clinicapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wolfman30/clinic-booking-form/internal/schedule"
)

// Default endpoint paths, relative to the configured base URL.
const (
	defaultDoctorsPath = "/consultas/medicos_por_especialidade/"
	defaultSlotsPath   = "/consultas/horarios_disponiveis/"
	defaultSubmitPath  = "/consultas/nova/"
)

// Client talks to the clinic scheduling endpoints: the two availability reads
// and the booking write. It does not validate business inputs; callers supply
// non-empty ids.
type Client struct {
	baseURL     string
	doctorsPath string
	slotsPath   string
	submitPath  string
	httpClient  *http.Client
}

// Config holds configuration for the clinic API client.
type Config struct {
	BaseURL     string // e.g. "https://clinica.example.com"
	DoctorsPath string // optional, defaults to the read endpoint path
	SlotsPath   string // optional, defaults to the read endpoint path
	SubmitPath  string // optional; the booking form's own URL (edit mode uses the record's URL)
	Timeout     time.Duration
}

// New creates a new clinic API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("clinicapi: BaseURL is required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		doctorsPath: cfg.DoctorsPath,
		slotsPath:   cfg.SlotsPath,
		submitPath:  cfg.SubmitPath,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	if c.doctorsPath == "" {
		c.doctorsPath = defaultDoctorsPath
	}
	if c.slotsPath == "" {
		c.slotsPath = defaultSlotsPath
	}
	if c.submitPath == "" {
		c.submitPath = defaultSubmitPath
	}

	return c, nil
}

// FetchDoctors retrieves the doctors offering the given specialty, in server
// order. An empty list is a valid result, not an error.
func (c *Client) FetchDoctors(ctx context.Context, specialtyID string) ([]Doctor, error) {
	params := url.Values{}
	params.Set("especialidade_id", specialtyID)

	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, c.doctorsPath, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrUnavailable, err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var body doctorsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrUnavailable, err)
	}

	return body.Medicos, nil
}

// FetchAvailableSlots retrieves the free slot labels for a doctor on a date
// (YYYY-MM-DD) as a set. Labels outside the slot catalog are dropped.
func (c *Client) FetchAvailableSlots(ctx context.Context, doctorID, date string) (map[string]bool, error) {
	params := url.Values{}
	params.Set("medico_id", doctorID)
	params.Set("data", date)

	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, c.slotsPath, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrUnavailable, err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var body slotsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrUnavailable, err)
	}

	available := make(map[string]bool, len(body.Horarios))
	for _, label := range body.Horarios {
		if schedule.Contains(label) {
			available[label] = true
		}
	}

	return available, nil
}

// Submit posts the form-encoded booking fields and classifies the JSON reply.
// The X-Requested-With header tells the server to answer with JSON instead of
// a redirect. Validation rejections come back as a populated Outcome, not an
// error; only transport/parse failures error out.
func (c *Client) Submit(ctx context.Context, fields url.Values) (*Outcome, error) {
	endpoint := c.baseURL + c.submitPath

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(fields.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("X-Requested-With", "XMLHttpRequest")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Rejections arrive with 4xx/5xx status but still carry the ok/errors
	// body, so the body decides the outcome, not the status code.
	var body submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response (status %d): %v", ErrUnavailable, resp.StatusCode, err)
	}

	if body.OK {
		if body.Consulta == nil {
			return nil, fmt.Errorf("%w: ok response without consulta payload", ErrUnavailable)
		}
		return &Outcome{OK: true, Confirmation: body.Consulta}, nil
	}

	if body.Errors == nil {
		body.Errors = FieldErrors{}
	}
	return &Outcome{OK: false, Errors: body.Errors}, nil
}
