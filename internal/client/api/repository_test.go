package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sdeshpande/CivicDesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRepository(baseURL string) *Repository {
	return &Repository{Client: New(baseURL, zap.NewNop())}
}

func TestList_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/allcomplaints/", r.URL.Path)
		w.Write([]byte(`{
			"status": "success",
			"all_complaints": [
				{"c_id": 1, "c_name": "Asha", "c_area": "Shivaji Nagar",
				 "complaint": "no water", "complaint_for": "water",
				 "c_time": "2024-03-01", "c_status": "pending"},
				{"c_id": "2", "c_name": "Ravi", "c_area": "MG Road",
				 "complaint": "street light out", "complaint_for": "light",
				 "c_time": "2024-02-11", "c_status": "complete"}
			]
		}`))
	}))
	defer srv.Close()

	complaints, err := newRepository(srv.URL).List(context.Background())
	require.NoError(t, err)
	require.Len(t, complaints, 2)
	assert.Equal(t, "1", complaints[0].ID)
	assert.Equal(t, "2", complaints[1].ID)
	assert.Equal(t, models.StatusComplete, complaints[1].Status)
}

func TestList_UnsuccessfulStatusReturnsEmptySliceAndError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","message":"db offline"}`))
	}))
	defer srv.Close()

	complaints, err := newRepository(srv.URL).List(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindServer, Kind(err))
	assert.NotNil(t, complaints)
	assert.Empty(t, complaints)
}

func TestList_MalformedBodyNeverPanics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	complaints, err := newRepository(srv.URL).List(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindServer, Kind(err))
	assert.Empty(t, complaints)
}

func TestGetByID_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/complaintdetails/7/", r.URL.Path)
		w.Write([]byte(`{
			"status": "success",
			"complaint_details": {
				"c_id": 7, "c_name": "Asha", "c_contactno": "9876543210",
				"c_area": "Shivaji Nagar", "complaint_for": "road",
				"complaint": "potholes", "c_description": "crew assigned",
				"c_time": "2024-01-20", "c_status": "inprocess"
			}
		}`))
	}))
	defer srv.Close()

	c, err := newRepository(srv.URL).GetByID(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "7", c.ID)
	assert.Equal(t, "crew assigned", c.AdminNote)
	assert.Equal(t, models.StatusInProcess, c.Status)
}

func TestGetByID_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":"error","message":"complaint not found"}`))
	}))
	defer srv.Close()

	_, err := newRepository(srv.URL).GetByID(context.Background(), "999")
	require.Error(t, err)
	assert.Equal(t, KindServer, Kind(err))
	assert.Contains(t, err.Error(), "complaint not found")
}

func TestUpdateStatus_RoundTripsFullRecord(t *testing.T) {
	var putFields map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{
				"status": "success",
				"complaint_details": {
					"c_id": 3, "c_name": "Asha", "c_contactno": "9876543210",
					"c_area": "Shivaji Nagar", "complaint_for": "water",
					"complaint": "no water", "c_time": "2024-03-01",
					"c_status": "pending"
				}
			}`))
		case http.MethodPut:
			assert.Equal(t, "/updatecomplaint/3/", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(1<<20))
			putFields = map[string]string{}
			for k, v := range r.MultipartForm.Value {
				putFields[k] = v[0]
			}
			w.Write([]byte(`{"status":"success"}`))
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	err := newRepository(srv.URL).UpdateStatus(
		context.Background(), "3", models.StatusComplete, "pipe replaced", "")
	require.NoError(t, err)

	// Uneditable fields are round-tripped unchanged; only the status and
	// the note are new.
	assert.Equal(t, map[string]string{
		"c_name":        "Asha",
		"c_contactno":   "9876543210",
		"c_area":        "Shivaji Nagar",
		"complaint_for": "water",
		"complaint":     "no water",
		"c_description": "pipe replaced",
		"c_time":        "2024-03-01",
		"c_status":      "complete",
	}, putFields)
}

func TestUpdateStatus_FetchFailureStopsUpdate(t *testing.T) {
	var putHit bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			putHit = true
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":"error","message":"complaint not found"}`))
	}))
	defer srv.Close()

	err := newRepository(srv.URL).UpdateStatus(
		context.Background(), "404", models.StatusComplete, "", "")
	require.Error(t, err)
	assert.False(t, putHit, "update must not run when the fetch fails")
}

func TestSortByIncidentDate(t *testing.T) {
	complaints := []models.Complaint{
		{ID: "1", IncidentDate: "2024-01-01"},
		{ID: "2", IncidentDate: "2024-03-01"},
		{ID: "3", IncidentDate: "2024-02-01"},
	}

	desc := SortByIncidentDate(complaints, true)
	assert.Equal(t, []string{"2024-03-01", "2024-02-01", "2024-01-01"},
		[]string{desc[0].IncidentDate, desc[1].IncidentDate, desc[2].IncidentDate})

	asc := SortByIncidentDate(complaints, false)
	assert.Equal(t, []string{"2024-01-01", "2024-02-01", "2024-03-01"},
		[]string{asc[0].IncidentDate, asc[1].IncidentDate, asc[2].IncidentDate})

	// The input order is untouched.
	assert.Equal(t, "1", complaints[0].ID)
}

func TestSortByIncidentDate_TiesBreakByIDAscending(t *testing.T) {
	complaints := []models.Complaint{
		{ID: "10", IncidentDate: "2024-01-01"},
		{ID: "9", IncidentDate: "2024-01-01"},
		{ID: "2", IncidentDate: "2024-01-01"},
	}
	sorted := SortByIncidentDate(complaints, true)
	assert.Equal(t, []string{"2", "9", "10"},
		[]string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}

func TestResolved_FiltersToCompleted(t *testing.T) {
	complaints := []models.Complaint{
		{ID: "1", Status: models.StatusPending},
		{ID: "2", Status: models.StatusComplete},
		{ID: "3", Status: models.StatusInProcess},
		{ID: "4", Status: models.StatusComplete},
	}
	resolved := Resolved(complaints)
	require.Len(t, resolved, 2)
	assert.Equal(t, "2", resolved[0].ID)
	assert.Equal(t, "4", resolved[1].ID)
}
