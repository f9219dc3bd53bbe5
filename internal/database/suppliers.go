package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SupplierStore provides CRUD over a user's suppliers.
type SupplierStore struct {
	db DBExecutor
}

// NewSupplierStore creates a supplier store backed by the given executor.
func NewSupplierStore(db DBExecutor) *SupplierStore {
	return &SupplierStore{db: db}
}

// ListForUser returns the user's suppliers, newest first.
func (s *SupplierStore) ListForUser(ctx context.Context, userID string) ([]Supplier, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, name, contact, email, phone, created_at
		FROM suppliers
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []Supplier
	for rows.Next() {
		var sup Supplier
		if err := rows.Scan(&sup.ID, &sup.UserID, &sup.Name, &sup.Contact, &sup.Email, &sup.Phone, &sup.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, sup)
	}
	return suppliers, rows.Err()
}

// Get returns one supplier owned by the user, or pgx.ErrNoRows.
func (s *SupplierStore) Get(ctx context.Context, userID, id string) (Supplier, error) {
	var sup Supplier
	err := s.db.QueryRow(ctx, `
		SELECT id, user_id, name, contact, email, phone, created_at
		FROM suppliers
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&sup.ID, &sup.UserID, &sup.Name, &sup.Contact, &sup.Email, &sup.Phone, &sup.CreatedAt)
	if err != nil {
		return Supplier{}, err
	}
	return sup, nil
}

// Create inserts a supplier for the user.
func (s *SupplierStore) Create(ctx context.Context, sup Supplier) (Supplier, error) {
	err := s.db.QueryRow(ctx, `
		INSERT INTO suppliers (id, user_id, name, contact, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`, uuid.New().String(), sup.UserID, sup.Name, sup.Contact, sup.Email, sup.Phone).Scan(&sup.ID, &sup.CreatedAt)
	if err != nil {
		return Supplier{}, fmt.Errorf("failed to create supplier: %w", err)
	}
	return sup, nil
}

// Update overwrites a supplier owned by the user.
func (s *SupplierStore) Update(ctx context.Context, sup Supplier) (Supplier, error) {
	err := s.db.QueryRow(ctx, `
		UPDATE suppliers
		SET name = $3, contact = $4, email = $5, phone = $6
		WHERE id = $1 AND user_id = $2
		RETURNING created_at
	`, sup.ID, sup.UserID, sup.Name, sup.Contact, sup.Email, sup.Phone).Scan(&sup.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return Supplier{}, fmt.Errorf("supplier %s not found", sup.ID)
		}
		return Supplier{}, fmt.Errorf("failed to update supplier %s: %w", sup.ID, err)
	}
	return sup, nil
}

// Delete removes a supplier owned by the user.
func (s *SupplierStore) Delete(ctx context.Context, userID, id string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM suppliers WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete supplier %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("supplier %s not found", id)
	}
	return nil
}
