package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/garagedesk/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InvoiceRepo struct {
	pool *pgxpool.Pool
}

func NewInvoiceRepo(pool *pgxpool.Pool) *InvoiceRepo {
	return &InvoiceRepo{pool: pool}
}

const invoiceColumns = `id, number, client_id, items, subtotal, tax_rate, total, status, notes, created_at, updated_at`

func scanInvoice(row interface{ Scan(dest ...any) error }) (*models.Invoice, error) {
	var inv models.Invoice
	var items []byte
	err := row.Scan(&inv.ID, &inv.Number, &inv.ClientID, &items, &inv.Subtotal, &inv.TaxRate,
		&inv.Total, &inv.Status, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &inv.Items); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepo) Create(ctx context.Context, inv *models.Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO invoices (number, client_id, items, subtotal, tax_rate, total, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, inv.Number, inv.ClientID, items, inv.Subtotal, inv.TaxRate, inv.Total, inv.Status, inv.Notes).
		Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	return scanInvoice(r.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
}

func (r *InvoiceRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Invoice, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE client_id = $1 ORDER BY created_at DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}

func (r *InvoiceRepo) List(ctx context.Context, limit, offset int) ([]models.Invoice, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}

func (r *InvoiceRepo) Update(ctx context.Context, inv *models.Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return err
	}
	inv.UpdatedAt = time.Now()
	_, err = r.pool.Exec(ctx, `
		UPDATE invoices SET number = $1, items = $2, subtotal = $3, tax_rate = $4, total = $5,
			status = $6, notes = $7, updated_at = $8
		WHERE id = $9
	`, inv.Number, items, inv.Subtotal, inv.TaxRate, inv.Total, inv.Status, inv.Notes, inv.UpdatedAt, inv.ID)
	return err
}

func (r *InvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	return err
}
