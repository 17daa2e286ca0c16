package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sdeshpande/CivicDesk/internal/models"
)

// complaintColumns is the select list shared by every read. The id is
// cast to text and the date rendered as a calendar string so rows scan
// straight into models.Complaint.
const complaintColumns = `
	c_id::text, c_name, c_contactno, c_area, complaint_for, complaint,
	c_description, to_char(c_time, 'YYYY-MM-DD'), c_image, c_status`

// PostgresComplaintRepository implements complaint persistence against a
// PostgreSQL database.
type PostgresComplaintRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresComplaintRepository creates a new PostgresComplaintRepository
// using the provided database connection.
func NewPostgresComplaintRepository(db *sql.DB) *PostgresComplaintRepository {
	return &PostgresComplaintRepository{DB: db}
}

// Create inserts a new complaint and returns the assigned id.
func (r *PostgresComplaintRepository) Create(ctx context.Context, c models.Complaint) (string, error) {
	var id string
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO complaints
			(c_name, c_contactno, c_area, complaint_for, complaint,
			 c_description, c_time, c_image, c_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING c_id::text
	`, c.ReporterName, c.ContactNumber, c.Area, c.Category, c.Description,
		c.AdminNote, c.IncidentDate, c.ImageURI, c.Status).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert complaint: %w", err)
	}
	return id, nil
}

// GetAll fetches every complaint, oldest first.
func (r *PostgresComplaintRepository) GetAll(ctx context.Context) ([]models.Complaint, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+complaintColumns+` FROM complaints ORDER BY c_id`)
	if err != nil {
		return nil, fmt.Errorf("select complaints: %w", err)
	}
	defer rows.Close()

	var complaints []models.Complaint
	for rows.Next() {
		var c models.Complaint
		if err := rows.Scan(&c.ID, &c.ReporterName, &c.ContactNumber, &c.Area,
			&c.Category, &c.Description, &c.AdminNote, &c.IncidentDate,
			&c.ImageURI, &c.Status); err != nil {
			return nil, fmt.Errorf("scan complaint: %w", err)
		}
		complaints = append(complaints, c)
	}
	return complaints, rows.Err()
}

// GetByID fetches a single complaint. It returns sql.ErrNoRows when the
// id is unknown.
func (r *PostgresComplaintRepository) GetByID(ctx context.Context, id string) (*models.Complaint, error) {
	var c models.Complaint
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+complaintColumns+` FROM complaints WHERE c_id = $1`, id,
	).Scan(&c.ID, &c.ReporterName, &c.ContactNumber, &c.Area, &c.Category,
		&c.Description, &c.AdminNote, &c.IncidentDate, &c.ImageURI, &c.Status)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Update replaces the full record for the given id. It returns
// sql.ErrNoRows when the id is unknown.
func (r *PostgresComplaintRepository) Update(ctx context.Context, id string, c models.Complaint) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE complaints
		   SET c_name = $1, c_contactno = $2, c_area = $3, complaint_for = $4,
		       complaint = $5, c_description = $6, c_time = $7, c_image = $8,
		       c_status = $9
		 WHERE c_id = $10
	`, c.ReporterName, c.ContactNumber, c.Area, c.Category, c.Description,
		c.AdminNote, c.IncidentDate, c.ImageURI, c.Status, id)
	if err != nil {
		return fmt.Errorf("update complaint: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
