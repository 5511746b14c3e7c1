package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.AttributeRepository = (*AttributeRepo)(nil)

// AttributeRepo implementación del puerto AttributeRepository sobre PostgreSQL (usable con pool o tx).
// Las opciones de enum se guardan como arreglo JSONB.
type AttributeRepo struct {
	q Querier
}

// NewAttributeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAttributeRepository(q Querier) *AttributeRepo {
	return &AttributeRepo{q: q}
}

const attributeColumns = `id, category_id, name, data_type, is_required, is_unique, unit, options, created_at, updated_at`

// Create persiste una definición. Nombre repetido en la categoría → domain.ErrDuplicate.
func (r *AttributeRepo) Create(ctx context.Context, a *entity.AttributeDefinition) error {
	options, err := encodeOptions(a.Options)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO attribute_definitions (`+attributeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.CategoryID, a.Name, string(a.Type), a.IsRequired, a.IsUnique, a.Unit, options, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return writeError("insert attribute", err)
	}
	return nil
}

// GetByID obtiene una definición por ID acotada a su categoría.
func (r *AttributeRepo) GetByID(ctx context.Context, categoryID, id string) (*entity.AttributeDefinition, error) {
	if !validID(id) || !validID(categoryID) {
		return nil, nil
	}
	row := r.q.QueryRow(ctx, `SELECT `+attributeColumns+` FROM attribute_definitions WHERE id = $1 AND category_id = $2`, id, categoryID)
	a, err := scanAttribute(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attribute: %w", err)
	}
	return a, nil
}

// ListByCategory lista las definiciones de una categoría por nombre.
func (r *AttributeRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.AttributeDefinition, error) {
	rows, err := r.q.Query(ctx, `SELECT `+attributeColumns+` FROM attribute_definitions WHERE category_id = $1 ORDER BY name`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list attributes: %w", err)
	}
	defer rows.Close()
	var list []*entity.AttributeDefinition
	for rows.Next() {
		a, err := scanAttribute(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attribute: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update sobrescribe todos los campos editables de la definición.
func (r *AttributeRepo) Update(ctx context.Context, a *entity.AttributeDefinition) error {
	options, err := encodeOptions(a.Options)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		UPDATE attribute_definitions
		SET name = $2, data_type = $3, is_required = $4, is_unique = $5, unit = $6, options = $7, updated_at = $8
		WHERE id = $1`,
		a.ID, a.Name, string(a.Type), a.IsRequired, a.IsUnique, a.Unit, options, a.UpdatedAt,
	)
	if err != nil {
		return writeError("update attribute", err)
	}
	return nil
}

// Delete elimina una definición por ID.
func (r *AttributeRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM attribute_definitions WHERE id = $1`, id); err != nil {
		return writeError("delete attribute", err)
	}
	return nil
}

// DeleteByCategory elimina todas las definiciones de la categoría.
func (r *AttributeRepo) DeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM attribute_definitions WHERE category_id = $1`, categoryID)
	if err != nil {
		return 0, writeError("delete attributes by category", err)
	}
	return cmd.RowsAffected(), nil
}

func scanAttribute(row pgx.Row) (*entity.AttributeDefinition, error) {
	var (
		a        entity.AttributeDefinition
		dataType string
		options  []byte
	)
	if err := row.Scan(&a.ID, &a.CategoryID, &a.Name, &dataType, &a.IsRequired, &a.IsUnique, &a.Unit, &options, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Type = entity.AttributeType(dataType)
	if len(options) > 0 {
		if err := json.Unmarshal(options, &a.Options); err != nil {
			return nil, fmt.Errorf("decode options: %w", err)
		}
	}
	return &a, nil
}

// encodeOptions devuelve nil (NULL) para listas vacías y el arreglo JSON en otro caso.
func encodeOptions(options []string) ([]byte, error) {
	if len(options) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("encode options: %w", err)
	}
	return b, nil
}
