package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tezexpress/courier-manager/internal/dependency"
	"github.com/tezexpress/courier-manager/internal/entity"
)

// ErrCourierNotFound is returned when no courier matches the lookup.
var ErrCourierNotFound = errors.New("courier not found")

type courierStore struct {
	*MYSQLStore
}

// Couriers returns an object implementing the Couriers interface
func (ms *MYSQLStore) Couriers() dependency.Couriers {
	return &courierStore{
		MYSQLStore: ms,
	}
}

func (ms *MYSQLStore) GetCourierById(ctx context.Context, id int) (*entity.Courier, error) {
	query := `SELECT id, name, phone, role FROM courier WHERE id = :id`
	c, err := QueryNamedOne[entity.Courier](ctx, ms.DB(), query, map[string]any{"id": id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourierNotFound
		}
		return nil, fmt.Errorf("failed to get courier by id: %w", err)
	}
	return &c, nil
}

func (ms *MYSQLStore) ListByRole(ctx context.Context, role string) ([]entity.Courier, error) {
	query := `SELECT id, name, phone, role FROM courier WHERE role = :role ORDER BY id ASC`
	couriers, err := QueryListNamed[entity.Courier](ctx, ms.DB(), query, map[string]any{"role": role})
	if err != nil {
		return nil, fmt.Errorf("failed to list couriers by role: %w", err)
	}
	return couriers, nil
}

func (ms *MYSQLStore) UpsertCourier(ctx context.Context, c *entity.Courier) (int, error) {
	if c.Role == "" {
		c.Role = entity.RoleCourier
	}
	if c.ID != 0 {
		query := `UPDATE courier SET name = :name, phone = :phone, role = :role WHERE id = :id`
		err := ExecNamed(ctx, ms.DB(), query, map[string]any{
			"id":    c.ID,
			"name":  c.Name,
			"phone": c.Phone,
			"role":  c.Role,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to update courier: %w", err)
		}
		return c.ID, nil
	}
	query := `INSERT INTO courier (name, phone, role) VALUES (:name, :phone, :role)`
	id, err := ExecNamedLastId(ctx, ms.DB(), query, map[string]any{
		"name":  c.Name,
		"phone": c.Phone,
		"role":  c.Role,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add courier: %w", err)
	}
	c.ID = id
	return id, nil
}
