// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/mvalencia464/onboard/internal/app"
	"github.com/mvalencia464/onboard/internal/domain"
)

// maxUploadBytes caps one multipart asset request.
const maxUploadBytes = 32 << 20

type Handlers struct {
	Q *app.QueryService
	S *app.OnboardingService
	U *app.Uploader
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/places", h.findPlaces)
	s.mux.Post("/v1/onboardings", h.startOnboarding)
	s.mux.Post("/v1/onboardings/manual", h.startManual)
	s.mux.Get("/v1/records", h.listRecords)
	s.mux.Get("/v1/records/{id}", h.getRecord)
	s.mux.Put("/v1/records/{id}", h.updateRecord)
	s.mux.Post("/v1/records/{id}/finalize", h.finalizeRecord)
	s.mux.Post("/v1/records/{id}/categories/import", h.importCategories)
	s.mux.Post("/v1/assets", h.uploadAssets)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		// Log but don't fail the whole response; return empty ETag and best-effort body.
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func recordID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handlers) findPlaces(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeProblem(w, http.StatusBadRequest, "Missing query", "query parameter is required")
		return
	}
	places, err := h.S.FindPlaces(r.Context(), query)
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Place search failed", "the places backend did not answer")
		return
	}
	writeJSON(w, http.StatusOK, places)
}

func (h *Handlers) startOnboarding(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlaceID string `json:"placeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlaceID == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid request", "body must carry a non-empty placeId")
		return
	}

	rec, err := h.S.Onboard(r.Context(), req.PlaceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Unknown place", "no business profile for that place id")
			return
		}
		// Enrichment runs discard everything on failure; the client retries the
		// whole step.
		writeProblem(w, http.StatusBadGateway, "Analysis failed", "onboarding analysis failed, retry the request")
		return
	}

	saved, err := h.S.SaveDraft(r.Context(), rec)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Save failed", "generated record could not be persisted")
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *Handlers) startManual(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BusinessName string `json:"businessName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BusinessName == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid request", "body must carry a non-empty businessName")
		return
	}
	saved, err := h.S.SaveDraft(r.Context(), h.S.Manual(req.BusinessName))
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Save failed", "record could not be persisted")
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *Handlers) listRecords(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListRecords(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Listing failed", "records could not be listed")
		return
	}

	etag, body := calcETagAndBody(out)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write listRecords body")
	}
}

func (h *Handlers) getRecord(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	rec, err := h.Q.GetRecord(r.Context(), id)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "record not found")
		return
	}

	etag, body := calcETagAndBody(rec)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getRecord body")
	}
}

func (h *Handlers) updateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	if _, err := h.Q.GetRecord(r.Context(), id); err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "record not found")
		return
	}

	var rec domain.BusinessRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "body must be a record document")
		return
	}
	saved, err := h.S.SaveDraft(r.Context(), app.Load(rec, id))
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Save failed", "record could not be persisted")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handlers) finalizeRecord(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	rec, err := h.Q.GetRecord(r.Context(), id)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "record not found")
		return
	}

	saved, export, err := h.S.Finalize(r.Context(), rec)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Finalize failed", "record could not be finalized")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", saved.ExportFilename()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(export); err != nil {
		log.Error().Err(err).Msg("failed to write export body")
	}
}

func (h *Handlers) importCategories(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	rec, err := h.Q.GetRecord(r.Context(), id)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "record not found")
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid request", "body must carry a non-empty text field")
		return
	}

	saved, err := h.S.ImportCategories(r.Context(), rec, req.Text)
	if err != nil {
		if errors.Is(err, app.ErrNoCategories) {
			writeProblem(w, http.StatusBadRequest, "Nothing to import",
				"no valid categories found; expected 'Category Name: Service 1, Service 2' blocks")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Save failed", "record could not be persisted")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handlers) uploadAssets(w http.ResponseWriter, r *http.Request) {
	if h.U == nil {
		writeProblem(w, http.StatusServiceUnavailable, "Uploads disabled", "no asset storage is configured")
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid upload", "body must be a multipart form")
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid upload", "at least one file part named files is required")
		return
	}

	assets := make([]app.Asset, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid upload", "could not read file "+fh.Filename)
			return
		}
		content, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid upload", "could not read file "+fh.Filename)
			return
		}
		assets = append(assets, app.Asset{Name: fh.Filename, Content: content})
	}

	sum := h.U.UploadAll(r.Context(), assets)
	status := http.StatusOK
	if len(sum.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, sum)
}
