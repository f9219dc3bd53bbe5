package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// MarginStore provides CRUD over a user's margin configurations.
type MarginStore struct {
	db DBExecutor
}

// NewMarginStore creates a margin store backed by the given executor.
func NewMarginStore(db DBExecutor) *MarginStore {
	return &MarginStore{db: db}
}

// ListForUser returns the user's margin configs ordered by priority
// descending. The ordering is display convenience only; resolution is
// scope-driven and never reads priority.
func (s *MarginStore) ListForUser(ctx context.Context, userID string) ([]MarginConfig, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, tyre_size_id, brand_id, tyre_model_id,
		       margin_type, margin_value, priority, created_at, updated_at
		FROM margin_configs
		WHERE user_id = $1
		ORDER BY priority DESC, created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list margin configs: %w", err)
	}
	defer rows.Close()

	var configs []MarginConfig
	for rows.Next() {
		var mc MarginConfig
		if err := rows.Scan(&mc.ID, &mc.UserID, &mc.TyreSizeID, &mc.BrandID, &mc.TyreModelID,
			&mc.MarginType, &mc.MarginValue, &mc.Priority, &mc.CreatedAt, &mc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan margin config: %w", err)
		}
		configs = append(configs, mc)
	}
	return configs, rows.Err()
}

// Create inserts a margin config for the user.
func (s *MarginStore) Create(ctx context.Context, mc MarginConfig) (MarginConfig, error) {
	err := s.db.QueryRow(ctx, `
		INSERT INTO margin_configs (
			id, user_id, tyre_size_id, brand_id, tyre_model_id,
			margin_type, margin_value, priority, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, uuid.New().String(), mc.UserID, mc.TyreSizeID, mc.BrandID, mc.TyreModelID,
		mc.MarginType, mc.MarginValue, mc.Priority).Scan(&mc.ID, &mc.CreatedAt, &mc.UpdatedAt)
	if err != nil {
		return MarginConfig{}, fmt.Errorf("failed to create margin config: %w", err)
	}
	return mc, nil
}

// Update overwrites a margin config owned by the user.
func (s *MarginStore) Update(ctx context.Context, mc MarginConfig) (MarginConfig, error) {
	err := s.db.QueryRow(ctx, `
		UPDATE margin_configs
		SET tyre_size_id = $3,
		    brand_id = $4,
		    tyre_model_id = $5,
		    margin_type = $6,
		    margin_value = $7,
		    priority = $8,
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING created_at, updated_at
	`, mc.ID, mc.UserID, mc.TyreSizeID, mc.BrandID, mc.TyreModelID,
		mc.MarginType, mc.MarginValue, mc.Priority).Scan(&mc.CreatedAt, &mc.UpdatedAt)
	if err != nil {
		return MarginConfig{}, fmt.Errorf("failed to update margin config %s: %w", mc.ID, err)
	}
	return mc, nil
}

// Delete removes a margin config owned by the user.
func (s *MarginStore) Delete(ctx context.Context, userID, id string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM margin_configs WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete margin config %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("margin config %s not found", id)
	}
	return nil
}
