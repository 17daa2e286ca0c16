package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sdeshpande/CivicDesk/internal/models"
	"github.com/sdeshpande/CivicDesk/internal/service"
	"go.uber.org/zap"
)

// maxUploadSize bounds the multipart bodies the complaint endpoints
// accept.
const maxUploadSize = 10 << 20

// ComplaintService defines the interface for complaint operations
// required by the HTTP handlers.
type ComplaintService interface {
	Create(ctx context.Context, c models.Complaint) (string, error)
	List(ctx context.Context) ([]models.Complaint, error)
	Get(ctx context.Context, id string) (*models.Complaint, error)
	Update(ctx context.Context, id string, c models.Complaint) error
}

// ComplaintsHandler handles complaint intake, listing, detail and update
// requests.
type ComplaintsHandler struct {
	// Service performs the underlying complaint operations.
	Service ComplaintService
	// UploadDir is where attached images are stored, under generated
	// filenames.
	UploadDir string
	// Log records failures; complaint field values are never logged.
	Log *zap.Logger
}

// complaintFromForm builds a complaint record from the multipart fields
// shared by the create and update endpoints.
func complaintFromForm(r *http.Request) models.Complaint {
	return models.Complaint{
		ReporterName:  r.FormValue("c_name"),
		ContactNumber: r.FormValue("c_contactno"),
		Area:          r.FormValue("c_area"),
		Category:      r.FormValue("complaint_for"),
		Description:   r.FormValue("complaint"),
		AdminNote:     r.FormValue("c_description"),
		IncidentDate:  r.FormValue("c_time"),
		Status:        models.Status(r.FormValue("c_status")),
	}
}

// saveImage stores the optional c_image part under a generated filename
// and returns its relative URI. An absent part yields "" without error.
func (h *ComplaintsHandler) saveImage(r *http.Request) (string, error) {
	src, _, err := r.FormFile("c_image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ".jpg"
	dst, err := os.Create(filepath.Join(h.UploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// Create handles POST /addcomplaint/ requests.
func (h *ComplaintsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	complaint := complaintFromForm(r)
	imageURI, err := h.saveImage(r)
	if err != nil {
		h.Log.Error("failed to store complaint image", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	complaint.ImageURI = imageURI

	id, err := h.Service.Create(r.Context(), complaint)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields),
			errors.Is(err, service.ErrInvalidCategory):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.Log.Error("failed to create complaint", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "success",
		"c_id":   id,
	})
}

// List handles GET /allcomplaints/ requests.
func (h *ComplaintsHandler) List(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.Service.List(r.Context())
	if err != nil {
		h.Log.Error("failed to list complaints", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if complaints == nil {
		complaints = []models.Complaint{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "success",
		"all_complaints": complaints,
	})
}

// Details handles GET /complaintdetails/{id}/ requests.
func (h *ComplaintsHandler) Details(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	complaint, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "complaint not found")
			return
		}
		h.Log.Error("failed to fetch complaint", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":            "success",
		"complaint_details": complaint,
	})
}

// Update handles PUT /updatecomplaint/{id}/ requests. The client sends
// the full record; an omitted image part keeps the stored image.
func (h *ComplaintsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	current, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "complaint not found")
			return
		}
		h.Log.Error("failed to fetch complaint", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	complaint := complaintFromForm(r)
	imageURI, err := h.saveImage(r)
	if err != nil {
		h.Log.Error("failed to store complaint image", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if imageURI == "" {
		imageURI = current.ImageURI
	}
	complaint.ImageURI = imageURI

	if err := h.Service.Update(r.Context(), id, complaint); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			writeError(w, http.StatusNotFound, "complaint not found")
		case errors.Is(err, service.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.Log.Error("failed to update complaint", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
