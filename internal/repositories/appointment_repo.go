package repositories

import (
	"context"
	"time"

	"github.com/garagedesk/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AppointmentRepo struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepo(pool *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{pool: pool}
}

const appointmentColumns = `id, client_id, scheduled_at, service, status, notes, created_at, updated_at`

func scanAppointment(row interface{ Scan(dest ...any) error }) (*models.Appointment, error) {
	var a models.Appointment
	err := row.Scan(&a.ID, &a.ClientID, &a.ScheduledAt, &a.Service, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepo) Create(ctx context.Context, a *models.Appointment) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO appointments (client_id, scheduled_at, service, status, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, a.ClientID, a.ScheduledAt, a.Service, a.Status, a.Notes).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	return scanAppointment(r.pool.QueryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id))
}

func (r *AppointmentRepo) List(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+` FROM appointments
		WHERE scheduled_at >= $1 AND scheduled_at < $2
		ORDER BY scheduled_at
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []models.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, *a)
	}
	return appts, rows.Err()
}

func (r *AppointmentRepo) Update(ctx context.Context, a *models.Appointment) error {
	a.UpdatedAt = time.Now()
	_, err := r.pool.Exec(ctx, `
		UPDATE appointments SET scheduled_at = $1, service = $2, status = $3, notes = $4, updated_at = $5
		WHERE id = $6
	`, a.ScheduledAt, a.Service, a.Status, a.Notes, a.UpdatedAt, a.ID)
	return err
}

func (r *AppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	return err
}
