package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sdeshpande/CivicDesk/internal/models"
	"github.com/sdeshpande/CivicDesk/internal/service"
	"go.uber.org/zap"
)

// fakeComplaintService implements ComplaintService for testing.
type fakeComplaintService struct {
	created   *models.Complaint
	updated   *models.Complaint
	list      []models.Complaint
	get       *models.Complaint
	createErr error
	listErr   error
	getErr    error
	updateErr error
}

func (f *fakeComplaintService) Create(ctx context.Context, c models.Complaint) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = &c
	return "13", nil
}

func (f *fakeComplaintService) List(ctx context.Context) ([]models.Complaint, error) {
	return f.list, f.listErr
}

func (f *fakeComplaintService) Get(ctx context.Context, id string) (*models.Complaint, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.get, nil
}

func (f *fakeComplaintService) Update(ctx context.Context, id string, c models.Complaint) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = &c
	return nil
}

func newComplaintsHandler(t *testing.T, svc ComplaintService) *ComplaintsHandler {
	t.Helper()
	return &ComplaintsHandler{
		Service:   svc,
		UploadDir: t.TempDir(),
		Log:       zap.NewNop(),
	}
}

// multipartBody builds a multipart form with the given text fields and an
// optional image part.
func multipartBody(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if withImage {
		part, err := w.CreateFormFile("c_image", "complaint_image.jpg")
		if err != nil {
			t.Fatalf("create image part: %v", err)
		}
		if _, err := part.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("write image part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}
	return body, w.FormDataContentType()
}

func createFields() map[string]string {
	return map[string]string{
		"c_name":        "Asha",
		"c_contactno":   "9876543210",
		"c_area":        "Shivaji Nagar",
		"complaint":     "no water",
		"complaint_for": "water",
		"c_time":        "2024-03-01",
	}
}

func TestComplaintsHandler_Create(t *testing.T) {
	svc := &fakeComplaintService{}
	h := newComplaintsHandler(t, svc)

	body, contentType := multipartBody(t, createFields(), false)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/addcomplaint/", body)
	req.Header.Set("Content-Type", contentType)
	h.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp["status"] != "success" || resp["c_id"] != "13" {
		t.Errorf("unexpected response: %v", resp)
	}
	if svc.created.ReporterName != "Asha" || svc.created.IncidentDate != "2024-03-01" {
		t.Errorf("fields not forwarded: %+v", svc.created)
	}
	if svc.created.ImageURI != "" {
		t.Errorf("expected no image URI, got %s", svc.created.ImageURI)
	}
}

func TestComplaintsHandler_Create_StoresImage(t *testing.T) {
	svc := &fakeComplaintService{}
	h := newComplaintsHandler(t, svc)

	body, contentType := multipartBody(t, createFields(), true)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/addcomplaint/", body)
	req.Header.Set("Content-Type", contentType)
	h.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(svc.created.ImageURI, "/uploads/") {
		t.Fatalf("expected uploaded image URI, got %q", svc.created.ImageURI)
	}

	stored := filepath.Join(h.UploadDir, strings.TrimPrefix(svc.created.ImageURI, "/uploads/"))
	data, err := os.ReadFile(stored)
	if err != nil {
		t.Fatalf("stored image missing: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Errorf("stored image corrupted")
	}
}

func TestComplaintsHandler_Create_ValidationFailure(t *testing.T) {
	svc := &fakeComplaintService{createErr: service.ErrMissingFields}
	h := newComplaintsHandler(t, svc)

	body, contentType := multipartBody(t, map[string]string{"c_name": "Asha"}, false)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/addcomplaint/", body)
	req.Header.Set("Content-Type", contentType)
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"error"`) {
		t.Errorf("expected error envelope, got %s", rec.Body.String())
	}
}

func TestComplaintsHandler_List(t *testing.T) {
	svc := &fakeComplaintService{list: []models.Complaint{
		{ID: "1", ReporterName: "Asha", Status: models.StatusPending},
	}}
	h := newComplaintsHandler(t, svc)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/allcomplaints/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Status     string             `json:"status"`
		Complaints []models.Complaint `json:"all_complaints"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.Status != "success" || len(resp.Complaints) != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestComplaintsHandler_List_EmptyIsStillSuccess(t *testing.T) {
	h := newComplaintsHandler(t, &fakeComplaintService{})

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/allcomplaints/", nil))

	if !strings.Contains(rec.Body.String(), `"all_complaints":[]`) {
		t.Errorf("expected empty array, got %s", rec.Body.String())
	}
}

func TestComplaintsHandler_List_ServiceError(t *testing.T) {
	h := newComplaintsHandler(t, &fakeComplaintService{listErr: errors.New("db offline")})

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/allcomplaints/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

// detailRequest routes the request through chi so URL params resolve.
func detailRequest(t *testing.T, h *ComplaintsHandler, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/complaintdetails/{id}/", h.Details)
	r.Put("/updatecomplaint/{id}/", h.Update)

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", contentType)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestComplaintsHandler_Details(t *testing.T) {
	svc := &fakeComplaintService{get: &models.Complaint{
		ID: "7", ReporterName: "Asha", Status: models.StatusInProcess,
	}}
	h := newComplaintsHandler(t, svc)

	rec := detailRequest(t, h, "GET", "/complaintdetails/7/", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"complaint_details"`) {
		t.Errorf("expected complaint_details envelope, got %s", rec.Body.String())
	}
}

func TestComplaintsHandler_Details_NotFound(t *testing.T) {
	h := newComplaintsHandler(t, &fakeComplaintService{getErr: service.ErrNotFound})

	rec := detailRequest(t, h, "GET", "/complaintdetails/999/", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "complaint not found") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestComplaintsHandler_Update(t *testing.T) {
	svc := &fakeComplaintService{get: &models.Complaint{
		ID: "3", ImageURI: "/uploads/old.jpg",
	}}
	h := newComplaintsHandler(t, svc)

	fields := createFields()
	fields["c_status"] = "complete"
	fields["c_description"] = "pipe replaced"
	body, contentType := multipartBody(t, fields, false)

	rec := detailRequest(t, h, "PUT", "/updatecomplaint/3/", body, contentType)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.updated.Status != models.StatusComplete {
		t.Errorf("status not forwarded: %+v", svc.updated)
	}
	if svc.updated.AdminNote != "pipe replaced" {
		t.Errorf("note not forwarded: %+v", svc.updated)
	}
	// An omitted image part keeps the stored image.
	if svc.updated.ImageURI != "/uploads/old.jpg" {
		t.Errorf("expected stored image to be kept, got %q", svc.updated.ImageURI)
	}
}

func TestComplaintsHandler_Update_InvalidStatus(t *testing.T) {
	svc := &fakeComplaintService{
		get:       &models.Complaint{ID: "3"},
		updateErr: service.ErrInvalidStatus,
	}
	h := newComplaintsHandler(t, svc)

	fields := createFields()
	fields["c_status"] = "done"
	body, contentType := multipartBody(t, fields, false)

	rec := detailRequest(t, h, "PUT", "/updatecomplaint/3/", body, contentType)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
