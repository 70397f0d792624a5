package repositories

import (
	"context"
	"encoding/json"

	"github.com/garagedesk/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRepo is the append-only audit store. There is deliberately no update
// or delete method; retention is an operational concern handled outside the
// application.
type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Append(ctx context.Context, entry models.AuditEntry) error {
	changes, err := json.Marshal(entry.Changes)
	if err != nil {
		return err
	}
	var metadata []byte
	if entry.Metadata != nil {
		if metadata, err = json.Marshal(entry.Metadata); err != nil {
			return err
		}
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO audit_logs (id, entity_type, entity_id, action, user_id, user_name, user_role, changes, metadata, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, entry.ID, entry.EntityType, entry.EntityID, entry.Action, entry.UserID,
		entry.UserName, entry.UserRole, changes, metadata,
		nullIfEmpty(entry.IPAddress), nullIfEmpty(entry.UserAgent), entry.Timestamp)
	return err
}

func (r *AuditRepo) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit int) ([]models.AuditEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, entity_type, entity_id, action, user_id, user_name, user_role, changes, metadata, ip_address, user_agent, created_at
		FROM audit_logs WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC LIMIT $3
	`, entityType, entityID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *AuditRepo) ListByActor(ctx context.Context, userID uuid.UUID, limit int) ([]models.AuditEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, entity_type, entity_id, action, user_id, user_name, user_role, changes, metadata, ip_address, user_agent, created_at
		FROM audit_logs WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		var changes []byte
		var metadata []byte
		var ip, ua *string
		if err := rows.Scan(&e.ID, &e.EntityType, &e.EntityID, &e.Action, &e.UserID,
			&e.UserName, &e.UserRole, &changes, &metadata, &ip, &ua, &e.Timestamp); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(changes, &e.Changes); err != nil {
			return nil, err
		}
		if metadata != nil {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, err
			}
		}
		if ip != nil {
			e.IPAddress = *ip
		}
		if ua != nil {
			e.UserAgent = *ua
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
