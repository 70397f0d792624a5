package repositories

import (
	"context"
	"time"

	"github.com/garagedesk/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClientRepo struct {
	pool *pgxpool.Pool
}

func NewClientRepo(pool *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{pool: pool}
}

const clientColumns = `id, name, phone, email, car_make, car_model, car_year, license_plate,
	issue_description, pre_existing_issues, estimated_duration, delivery_date, delivery_notes,
	notes, repair_status, payment_status, partial_payment_amount, payment_method, payment_date,
	payment_reference, deleted_at, created_at, updated_at`

func scanClient(row interface{ Scan(dest ...any) error }) (*models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CarMake, &c.CarModel, &c.CarYear,
		&c.LicensePlate, &c.IssueDescription, &c.PreExistingIssues, &c.EstimatedDuration,
		&c.DeliveryDate, &c.DeliveryNotes, &c.Notes, &c.RepairStatus, &c.PaymentStatus,
		&c.PartialPaymentAmount, &c.PaymentMethod, &c.PaymentDate, &c.PaymentReference,
		&c.DeletedAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepo) Create(ctx context.Context, c *models.Client) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO clients (name, phone, email, car_make, car_model, car_year, license_plate,
			issue_description, pre_existing_issues, estimated_duration, delivery_date, notes,
			repair_status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`, c.Name, c.Phone, c.Email, c.CarMake, c.CarModel, c.CarYear, c.LicensePlate,
		c.IssueDescription, c.PreExistingIssues, c.EstimatedDuration, c.DeliveryDate, c.Notes,
		c.RepairStatus, c.PaymentStatus).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// GetByID returns the client regardless of soft-delete state; callers that
// need live clients only should check DeletedAt.
func (r *ClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	return scanClient(r.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
}

func (r *ClientRepo) List(ctx context.Context, includeDeleted bool, limit, offset int) ([]models.Client, error) {
	if limit <= 0 {
		limit = 50
	}
	q := `SELECT ` + clientColumns + ` FROM clients`
	if !includeDeleted {
		q += ` WHERE deleted_at IS NULL`
	}
	q += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectClients(rows)
}

func collectClients(rows pgx.Rows) ([]models.Client, error) {
	var clients []models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

func (r *ClientRepo) Update(ctx context.Context, c *models.Client) error {
	c.UpdatedAt = time.Now()
	_, err := r.pool.Exec(ctx, `
		UPDATE clients SET name = $1, phone = $2, email = $3, car_make = $4, car_model = $5,
			car_year = $6, license_plate = $7, issue_description = $8, pre_existing_issues = $9,
			estimated_duration = $10, delivery_date = $11, delivery_notes = $12, notes = $13,
			repair_status = $14, payment_status = $15, partial_payment_amount = $16,
			payment_method = $17, payment_date = $18, payment_reference = $19, updated_at = $20
		WHERE id = $21
	`, c.Name, c.Phone, c.Email, c.CarMake, c.CarModel, c.CarYear, c.LicensePlate,
		c.IssueDescription, c.PreExistingIssues, c.EstimatedDuration, c.DeliveryDate,
		c.DeliveryNotes, c.Notes, c.RepairStatus, c.PaymentStatus, c.PartialPaymentAmount,
		c.PaymentMethod, c.PaymentDate, c.PaymentReference, c.UpdatedAt, c.ID)
	return err
}

func (r *ClientRepo) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE clients SET deleted_at = $1, updated_at = $1 WHERE id = $2`, at, id)
	return err
}

func (r *ClientRepo) Restore(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE clients SET deleted_at = NULL, updated_at = now() WHERE id = $1`, id)
	return err
}
