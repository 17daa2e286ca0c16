package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/sdeshpande/CivicDesk/internal/models"
)

// Repository reads and updates the backend complaint collection on behalf
// of the review screens. Failures come back as api errors; callers always
// receive a usable (possibly empty) slice.
type Repository struct {
	Client *Client
}

// complaintWire mirrors a complaint as the backend serializes it. The id
// is decoded as a json.Number because the backend has been observed to
// send both numeric and string ids.
type complaintWire struct {
	ID            json.Number `json:"c_id"`
	ReporterName  string      `json:"c_name"`
	ContactNumber string      `json:"c_contactno"`
	Area          string      `json:"c_area"`
	Category      string      `json:"complaint_for"`
	Description   string      `json:"complaint"`
	AdminNote     string      `json:"c_description"`
	IncidentDate  string      `json:"c_time"`
	ImageURI      string      `json:"c_image"`
	Status        string      `json:"c_status"`
}

func (w complaintWire) toModel() models.Complaint {
	return models.Complaint{
		ID:            w.ID.String(),
		ReporterName:  w.ReporterName,
		ContactNumber: w.ContactNumber,
		Area:          w.Area,
		Category:      w.Category,
		Description:   w.Description,
		AdminNote:     w.AdminNote,
		IncidentDate:  w.IncidentDate,
		ImageURI:      w.ImageURI,
		Status:        models.Status(w.Status),
	}
}

// List fetches all complaints. A malformed or unsuccessful response
// yields an empty slice and an error, never a panic.
func (r *Repository) List(ctx context.Context) ([]models.Complaint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		r.Client.BaseURL+pathAllComplaints, nil)
	if err != nil {
		return []models.Complaint{}, serverErr("", err)
	}

	resp, err := r.Client.do(req)
	if err != nil {
		return []models.Complaint{}, networkErr(err)
	}
	defer resp.Body.Close()

	var decoded struct {
		Status     string          `json:"status"`
		Complaints []complaintWire `json:"all_complaints"`
		Message    string          `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return []models.Complaint{}, serverErr("", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || decoded.Status != "success" {
		return []models.Complaint{}, serverErr(decoded.Message, nil)
	}

	complaints := make([]models.Complaint, 0, len(decoded.Complaints))
	for _, w := range decoded.Complaints {
		complaints = append(complaints, w.toModel())
	}
	return complaints, nil
}

// GetByID fetches a single complaint.
func (r *Repository) GetByID(ctx context.Context, id string) (*models.Complaint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		r.Client.BaseURL+pathComplaintDetails+id+"/", nil)
	if err != nil {
		return nil, serverErr("", err)
	}

	resp, err := r.Client.do(req)
	if err != nil {
		return nil, networkErr(err)
	}
	defer resp.Body.Close()

	var decoded struct {
		Status    string        `json:"status"`
		Complaint complaintWire `json:"complaint_details"`
		Message   string        `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, serverErr("", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || decoded.Status != "success" {
		return nil, serverErr(decoded.Message, nil)
	}

	complaint := decoded.Complaint.toModel()
	if complaint.ID == "" {
		complaint.ID = id
	}
	return &complaint, nil
}

// UpdateStatus changes a complaint's workflow status and admin note. The
// backend expects the full record, so the unedited fields are round-tripped
// unchanged from the fetched copy. imagePath optionally replaces the
// stored image.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status models.Status, note string, imagePath string) error {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	fields := []formField{
		{"c_name", current.ReporterName},
		{"c_contactno", current.ContactNumber},
		{"c_area", current.Area},
		{"complaint_for", current.Category},
		{"complaint", current.Description},
		{"c_description", note},
		{"c_time", current.IncidentDate},
		{"c_status", string(status)},
	}
	body, contentType, err := buildComplaintForm(fields, imagePath)
	if err != nil {
		return validationErr("could not read the attached image")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		r.Client.BaseURL+pathUpdateComplaint+id+"/", body)
	if err != nil {
		return serverErr("", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := r.Client.do(req)
	if err != nil {
		return networkErr(err)
	}
	defer resp.Body.Close()

	var decoded struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return serverErr("", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || decoded.Status != "success" {
		return serverErr(decoded.Message, nil)
	}
	return nil
}

// SortByIncidentDate orders complaints by incident date, newest first
// when desc is true. The sort is stable and ties are broken by id
// ascending; the input slice is not modified.
func SortByIncidentDate(complaints []models.Complaint, desc bool) []models.Complaint {
	sorted := make([]models.Complaint, len(complaints))
	copy(sorted, complaints)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.IncidentDate != b.IncidentDate {
			if desc {
				return a.IncidentDate > b.IncidentDate
			}
			return a.IncidentDate < b.IncidentDate
		}
		return lessID(a.ID, b.ID)
	})
	return sorted
}

// lessID orders ids numerically when both parse, lexicographically
// otherwise.
func lessID(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}

// Resolved filters the list down to completed complaints.
func Resolved(complaints []models.Complaint) []models.Complaint {
	resolved := make([]models.Complaint, 0)
	for _, c := range complaints {
		if c.Status == models.StatusComplete {
			resolved = append(resolved, c)
		}
	}
	return resolved
}
