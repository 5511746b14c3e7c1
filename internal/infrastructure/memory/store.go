// Package memory implementa los puertos de persistencia del catálogo sobre go-memdb.
// Replica las restricciones de la BD (unicidad, llaves foráneas sin cascada) y la semántica
// transaccional: Run abre una transacción de escritura y sólo hace Commit si fn no retorna error.
// Pensado para pruebas y entornos de desarrollo sin PostgreSQL.
package memory

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/hashicorp/go-memdb"

	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ catalog.TxRunner = (*Store)(nil)

const (
	tableCategories = "categories"
	tableAttributes = "attributes"
	tableProducts   = "products"
	tableValues     = "values"
)

// Store catálogo en memoria. go-memdb admite un solo escritor a la vez, así que las
// transacciones de Run quedan serializadas.
type Store struct {
	db  *memdb.MemDB
	seq atomic.Int64 // desempate de created_at en el listado de productos
}

type productRow struct {
	entity.Product
	seq int64
}

func newSchema() *memdb.DBSchema {
	byField := func(name, field string, unique bool) *memdb.IndexSchema {
		return &memdb.IndexSchema{Name: name, Unique: unique, Indexer: &memdb.StringFieldIndex{Field: field}}
	}
	return &memdb.DBSchema{Tables: map[string]*memdb.TableSchema{
		tableCategories: {
			Name: tableCategories,
			Indexes: map[string]*memdb.IndexSchema{
				"id":   byField("id", "ID", true),
				"name": byField("name", "Name", true),
			},
		},
		tableAttributes: {
			Name: tableAttributes,
			Indexes: map[string]*memdb.IndexSchema{
				"id":       byField("id", "ID", true),
				"category": byField("category", "CategoryID", false),
				"category_name": {
					Name:   "category_name",
					Unique: true,
					Indexer: &memdb.CompoundIndex{Indexes: []memdb.Indexer{
						&memdb.StringFieldIndex{Field: "CategoryID"},
						&memdb.StringFieldIndex{Field: "Name"},
					}},
				},
			},
		},
		tableProducts: {
			Name: tableProducts,
			Indexes: map[string]*memdb.IndexSchema{
				"id":       byField("id", "ID", true),
				"sku":      byField("sku", "SKU", true),
				"category": byField("category", "CategoryID", false),
			},
		},
		tableValues: {
			Name: tableValues,
			Indexes: map[string]*memdb.IndexSchema{
				"id":        byField("id", "ID", true),
				"product":   byField("product", "ProductID", false),
				"attribute": byField("attribute", "AttributeDefinitionID", false),
				"product_attribute": {
					Name:   "product_attribute",
					Unique: true,
					Indexer: &memdb.CompoundIndex{Indexes: []memdb.Indexer{
						&memdb.StringFieldIndex{Field: "ProductID"},
						&memdb.StringFieldIndex{Field: "AttributeDefinitionID"},
					}},
				},
			},
		},
	}}
}

// NewStore crea un store vacío.
func NewStore() *Store {
	db, err := memdb.NewMemDB(newSchema())
	if err != nil {
		panic(fmt.Sprintf("memory: esquema inválido: %v", err))
	}
	return &Store{db: db}
}

// Run ejecuta fn dentro de una transacción de escritura y la confirma sólo si fn termina sin error.
func (s *Store) Run(ctx context.Context, fn func(
	categoryRepo repository.CategoryRepository,
	attrRepo repository.AttributeRepository,
	productRepo repository.ProductRepository,
	valueRepo repository.AttributeValueRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	txn := s.db.Txn(true)
	defer txn.Abort()

	if err := fn(
		&categoryRepo{txn: txn},
		&attributeRepo{txn: txn},
		&productRepo{txn: txn, seq: &s.seq},
		&valueRepo{txn: txn},
	); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// Count devuelve el número de filas confirmadas por tabla.
func (s *Store) Count() (categories, attributes, products, values int) {
	txn := s.db.Txn(false)
	defer txn.Abort()
	return count(txn, tableCategories), count(txn, tableAttributes), count(txn, tableProducts), count(txn, tableValues)
}

func count(txn *memdb.Txn, table string) int {
	it, err := txn.Get(table, "id")
	if err != nil {
		return 0
	}
	n := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		n++
	}
	return n
}

// first devuelve la fila que coincide en el índice o nil si no existe.
func first[T any](txn *memdb.Txn, table, index string, args ...any) (*T, error) {
	raw, err := txn.First(table, index, args...)
	if err != nil {
		return nil, fmt.Errorf("memdb %s.%s: %w", table, index, err)
	}
	if raw == nil {
		return nil, nil
	}
	return raw.(*T), nil
}

// all recorre el índice y devuelve las filas que coinciden.
func all[T any](txn *memdb.Txn, table, index string, args ...any) ([]*T, error) {
	it, err := txn.Get(table, index, args...)
	if err != nil {
		return nil, fmt.Errorf("memdb %s.%s: %w", table, index, err)
	}
	var out []*T
	for obj := it.Next(); obj != nil; obj = it.Next() {
		out = append(out, obj.(*T))
	}
	return out, nil
}
