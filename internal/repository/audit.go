package repository

import (
	"context"
	"fmt"
	"strings"

	"sellerops/internal/domain"
)

type AuditInsertInput struct {
	UserID    *int64
	Username  *string
	Action    string
	Resource  *string
	Details   *string
	IPAddress *string
	UserAgent *string
	LogType   string
	Level     string
}

func (r *Repository) InsertAudit(ctx context.Context, input AuditInsertInput) error {
	if input.LogType == "" {
		input.LogType = domain.LogTypeUser
	}
	if input.Level == "" {
		input.Level = domain.LevelInfo
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_logs (user_id, username, action, resource, details, ip_address, user_agent, log_type, level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, input.UserID, input.Username, input.Action, input.Resource, input.Details,
		input.IPAddress, input.UserAgent, input.LogType, input.Level)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *Repository) ListAudit(ctx context.Context, limit, offset int, search string) ([]domain.AuditEntry, error) {
	limit = normalizeLimit(limit)
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, username, action, resource, details, ip_address, user_agent, log_type, level, created_at
		FROM audit_logs
		WHERE ($1 = ''
			OR action ILIKE '%' || $1 || '%'
			OR COALESCE(username, '') ILIKE '%' || $1 || '%'
			OR COALESCE(resource, '') ILIKE '%' || $1 || '%'
			OR COALESCE(details, '') ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, strings.TrimSpace(search), limit, normalizeOffset(offset))
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.AuditEntry, 0, limit)
	for rows.Next() {
		var entry domain.AuditEntry
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.Username, &entry.Action, &entry.Resource,
			&entry.Details, &entry.IPAddress, &entry.UserAgent, &entry.LogType,
			&entry.Level, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}

func (r *Repository) CountAudit(ctx context.Context, search string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM audit_logs
		WHERE ($1 = ''
			OR action ILIKE '%' || $1 || '%'
			OR COALESCE(username, '') ILIKE '%' || $1 || '%'
			OR COALESCE(resource, '') ILIKE '%' || $1 || '%'
			OR COALESCE(details, '') ILIKE '%' || $1 || '%')
	`, strings.TrimSpace(search)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count audit entries: %w", err)
	}
	return count, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 100
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
