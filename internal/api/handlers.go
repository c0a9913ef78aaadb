package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"recon-insights/internal/domain"
	"recon-insights/internal/export"
	"recon-insights/internal/usecase"
)

const maxPayloadBytes = 8 << 20

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	uc       *usecase.DashboardUseCase
	defaults domain.DashboardRequest
	now      func() time.Time
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse(time.DateOnly, s)
	}
	return t, err
}

// requestFrom overlays the query string on the configured defaults:
// platform (comma separated), date_field, start, end, tab and generated_at.
func (h *Handlers) requestFrom(r *http.Request) (domain.DashboardRequest, error) {
	req := h.defaults
	req.Platforms = append([]domain.Platform(nil), h.defaults.Platforms...)
	q := r.URL.Query()

	if v := q.Get("platform"); v != "" {
		req.Platforms = nil
		for _, name := range strings.Split(v, ",") {
			p, err := domain.ParsePlatform(name)
			if err != nil {
				return req, err
			}
			req.Platforms = append(req.Platforms, p)
		}
	}
	if v := q.Get("date_field"); v != "" {
		f, err := domain.ParseDateField(v)
		if err != nil {
			return req, err
		}
		req.DateField = f
	}
	for _, d := range []struct {
		key string
		dst *time.Time
	}{
		{"start", &req.Start},
		{"end", &req.End},
		{"generated_at", &req.GeneratedAt},
	} {
		v := q.Get(d.key)
		if v == "" {
			continue
		}
		t, err := parseDate(v)
		if err != nil {
			return req, fmt.Errorf("invalid %s '%s': use YYYY-MM-DD or RFC3339", d.key, v)
		}
		*d.dst = t
	}
	if v := q.Get("tab"); v != "" {
		req.ActiveTab = v
	}
	if req.GeneratedAt.IsZero() {
		req.GeneratedAt = h.now().UTC().Truncate(time.Second)
	}
	return req, nil
}

func statusFor(err error) int {
	if errors.Is(err, usecase.ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

// --- Health ---

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- GetDashboard ---

func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	req, err := h.requestFrom(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.uc.BuildDashboard(r.Context(), req)
	if err != nil {
		log.Printf("[api] dashboard error: %v", err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// --- ExportDashboard ---

func (h *Handlers) ExportDashboard(w http.ResponseWriter, r *http.Request) {
	req, err := h.requestFrom(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Buffer the report so a failure can still be answered with JSON.
	var buf bytes.Buffer
	if err := h.uc.Export(r.Context(), req, &buf); err != nil {
		log.Printf("[api] export error: %v", err)
		var exportErr *export.ExportError
		if errors.As(err, &exportErr) {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeError(w, statusFor(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(req.ExportContext())))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[api] write export: %v", err)
	}
}

// --- BuildViews ---

type viewsRequest struct {
	Snapshot json.RawMessage `json:"snapshot"`
	Ageing   json.RawMessage `json:"ageing"`
	Growth   json.RawMessage `json:"growth"`
}

func (h *Handlers) BuildViews(w http.ResponseWriter, r *http.Request) {
	var body viewsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPayloadBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if len(body.Snapshot) == 0 {
		writeError(w, http.StatusBadRequest, "snapshot is required")
		return
	}

	writeJSON(w, http.StatusOK, h.uc.BuildFromPayload(body.Snapshot, body.Ageing, body.Growth))
}
