package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.AttributeValueRepository = (*AttributeValueRepo)(nil)

// AttributeValueRepo implementación de AttributeValueRepository sobre PostgreSQL.
// Cada fila guarda la etiqueta value_type y exactamente un slot tipado no nulo.
type AttributeValueRepo struct {
	q Querier
}

// NewAttributeValueRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAttributeValueRepository(q Querier) *AttributeValueRepo {
	return &AttributeValueRepo{q: q}
}

// Upsert inserta o sobrescribe el valor de (producto, atributo). Los slots no usados quedan en NULL.
func (r *AttributeValueRepo) Upsert(ctx context.Context, v *entity.AttributeValue) error {
	var jsonText *string
	if v.Value.JSON != nil {
		s := string(v.Value.JSON)
		jsonText = &s
	}
	query := `
		INSERT INTO product_attribute_values (
			id, product_id, attribute_definition_id, value_type,
			string_value, int_value, decimal_value, bool_value, date_value, json_value,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (product_id, attribute_definition_id)
		DO UPDATE SET
			value_type = EXCLUDED.value_type,
			string_value = EXCLUDED.string_value,
			int_value = EXCLUDED.int_value,
			decimal_value = EXCLUDED.decimal_value,
			bool_value = EXCLUDED.bool_value,
			date_value = EXCLUDED.date_value,
			json_value = EXCLUDED.json_value,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		v.ID, v.ProductID, v.AttributeDefinitionID, string(v.Value.Type),
		v.Value.String, v.Value.Int, v.Value.Decimal, v.Value.Bool, v.Value.Date, jsonText,
		v.CreatedAt, v.UpdatedAt,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return writeError("upsert attribute value", err)
	}
	return nil
}

// ListByProduct devuelve los valores del producto con el nombre de su definición, por nombre.
func (r *AttributeValueRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.ResolvedAttributeValue, error) {
	if !validID(productID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT v.id, v.product_id, v.attribute_definition_id, v.value_type,
		       v.string_value, v.int_value, v.decimal_value, v.bool_value, v.date_value, v.json_value,
		       v.created_at, v.updated_at, a.name
		FROM product_attribute_values v
		JOIN attribute_definitions a ON a.id = v.attribute_definition_id
		WHERE v.product_id = $1
		ORDER BY a.name`, productID)
	if err != nil {
		return nil, fmt.Errorf("list attribute values: %w", err)
	}
	defer rows.Close()
	var list []*entity.ResolvedAttributeValue
	for rows.Next() {
		v, err := scanResolvedValue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attribute value: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// DeleteByProduct elimina los valores de un producto.
func (r *AttributeValueRepo) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	return r.delete(ctx, "delete values by product",
		`DELETE FROM product_attribute_values WHERE product_id = $1`, productID)
}

// DeleteByAttribute elimina los valores que referencian una definición.
func (r *AttributeValueRepo) DeleteByAttribute(ctx context.Context, attributeID string) (int64, error) {
	return r.delete(ctx, "delete values by attribute",
		`DELETE FROM product_attribute_values WHERE attribute_definition_id = $1`, attributeID)
}

// DeleteByCategory elimina los valores de todas las definiciones de la categoría.
func (r *AttributeValueRepo) DeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	return r.delete(ctx, "delete values by category", `
		DELETE FROM product_attribute_values
		WHERE attribute_definition_id IN (SELECT id FROM attribute_definitions WHERE category_id = $1)`, categoryID)
}

func (r *AttributeValueRepo) delete(ctx context.Context, op, query, id string) (int64, error) {
	cmd, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return 0, writeError(op, err)
	}
	return cmd.RowsAffected(), nil
}

func scanResolvedValue(row pgx.Row) (*entity.ResolvedAttributeValue, error) {
	var (
		v         entity.ResolvedAttributeValue
		valueType string
		jsonText  *string
	)
	err := row.Scan(
		&v.ID, &v.ProductID, &v.AttributeDefinitionID, &valueType,
		&v.Value.String, &v.Value.Int, &v.Value.Decimal, &v.Value.Bool, &v.Value.Date, &jsonText,
		&v.CreatedAt, &v.UpdatedAt, &v.AttributeName,
	)
	if err != nil {
		return nil, err
	}
	v.Value.Type = entity.AttributeType(valueType)
	if jsonText != nil {
		v.Value.JSON = json.RawMessage(*jsonText)
	}
	return &v, nil
}
