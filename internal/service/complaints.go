package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/sdeshpande/CivicDesk/internal/models"
)

// Validation and lookup failures surfaced to the handlers.
var (
	ErrNotFound        = errors.New("complaint not found")
	ErrMissingFields   = errors.New("mandatory fields are missing")
	ErrInvalidCategory = errors.New("unknown complaint category")
	ErrInvalidStatus   = errors.New("unknown complaint status")
)

// ComplaintRepository defines the persistence operations required by the
// complaint service.
type ComplaintRepository interface {
	Create(ctx context.Context, c models.Complaint) (string, error)
	GetAll(ctx context.Context) ([]models.Complaint, error)
	GetByID(ctx context.Context, id string) (*models.Complaint, error)
	Update(ctx context.Context, id string, c models.Complaint) error
}

// ComplaintService implements complaint intake, listing and review
// updates on top of a ComplaintRepository.
type ComplaintService struct {
	repo ComplaintRepository
}

// NewComplaintService constructs a new ComplaintService using the
// provided repository.
func NewComplaintService(repo ComplaintRepository) *ComplaintService {
	return &ComplaintService{repo: repo}
}

// Create validates and stores a new complaint, returning its id. New
// complaints always start in status pending.
func (s *ComplaintService) Create(ctx context.Context, c models.Complaint) (string, error) {
	if strings.TrimSpace(c.ReporterName) == "" ||
		strings.TrimSpace(c.Area) == "" ||
		strings.TrimSpace(c.Description) == "" ||
		strings.TrimSpace(c.IncidentDate) == "" {
		return "", ErrMissingFields
	}
	if !models.ValidCategory(models.Category(c.Category)) {
		return "", ErrInvalidCategory
	}
	c.Status = models.StatusPending
	return s.repo.Create(ctx, c)
}

// List returns every complaint.
func (s *ComplaintService) List(ctx context.Context) ([]models.Complaint, error) {
	return s.repo.GetAll(ctx)
}

// Get returns the complaint with the given id, or ErrNotFound.
func (s *ComplaintService) Get(ctx context.Context, id string) (*models.Complaint, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// Update replaces the record with the given id after validating its
// workflow status.
func (s *ComplaintService) Update(ctx context.Context, id string, c models.Complaint) error {
	if !validID(id) {
		return ErrNotFound
	}
	if !models.ValidStatus(c.Status) {
		return ErrInvalidStatus
	}
	if err := s.repo.Update(ctx, id, c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// validID filters out ids that cannot be a complaint key before they
// reach the database.
func validID(id string) bool {
	_, err := strconv.Atoi(id)
	return err == nil
}
