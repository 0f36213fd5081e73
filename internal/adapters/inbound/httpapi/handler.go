package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/valorisation/coherence/internal/adapters/outbound/snapshot"
	"github.com/valorisation/coherence/internal/application"
	"github.com/valorisation/coherence/internal/domain"
)

// maxBodyBytes caps request bodies at 4 MiB.
const maxBodyBytes = 4 << 20

type Handler struct {
	svc        *application.ValidateService
	configPath string
}

func NewHandler(svc *application.ValidateService, configPath string) *Handler {
	return &Handler{svc: svc, configPath: configPath}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.svc.Rules())
}

// Validate checks a single snapshot object and returns its report.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	subs, list, ok := h.decode(w, r)
	if !ok {
		return
	}
	if list {
		writeError(w, r, http.StatusBadRequest, errors.New("expected a single snapshot object, use /diagnostics/validate/batch for lists"))
		return
	}
	reports, ok := h.run(w, r, subs)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, reports[0])
}

// ValidateBatch checks a JSON array of snapshots and returns the reports in
// request order.
func (h *Handler) ValidateBatch(w http.ResponseWriter, r *http.Request) {
	subs, list, ok := h.decode(w, r)
	if !ok {
		return
	}
	if !list {
		writeError(w, r, http.StatusBadRequest, errors.New("expected a JSON array of snapshots"))
		return
	}
	reports, ok := h.run(w, r, subs)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, reports)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) ([]domain.Submission, bool, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Errorf("reading body: %w", err))
		return nil, false, false
	}

	subs, list, err := snapshot.DecodeSubmissions("request", body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return nil, false, false
	}
	return subs, list, true
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request, subs []domain.Submission) ([]*domain.Report, bool) {
	cfg, err := h.svc.LoadConfig(h.configPath)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return nil, false
	}

	q := r.URL.Query()
	if locale := q.Get("locale"); locale != "" {
		cfg.Locale = domain.Locale(locale)
	}
	if raw := q.Get("strict"); raw != "" {
		strict, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid strict value %q", raw))
			return nil, false
		}
		cfg.Strict = strict
	}
	if err := cfg.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return nil, false
	}

	reports, err := h.svc.ValidateBatch(r.Context(), cfg, subs)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return nil, false
	}
	return reports, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	zerolog.Ctx(r.Context()).Warn().
		Err(err).
		Int("status", status).
		Msg("request rejected")
	writeJSON(w, r, status, errorResponse{Error: err.Error()})
}
