package memory

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/hashicorp/go-memdb"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository       = (*categoryRepo)(nil)
	_ repository.AttributeRepository      = (*attributeRepo)(nil)
	_ repository.ProductRepository        = (*productRepo)(nil)
	_ repository.AttributeValueRepository = (*valueRepo)(nil)
)

// Las filas guardadas en memdb no se mutan: se inserta una copia y se devuelven copias.

type categoryRepo struct{ txn *memdb.Txn }

func (r *categoryRepo) Create(_ context.Context, c *entity.Category) error {
	existing, err := first[entity.Category](r.txn, tableCategories, "id", c.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("insert category: %w", domain.ErrDuplicate)
	}
	return r.save(c)
}

func (r *categoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, err := first[entity.Category](r.txn, tableCategories, "id", id)
	if err != nil || c == nil {
		return nil, err
	}
	out := *c
	return &out, nil
}

func (r *categoryRepo) Update(_ context.Context, c *entity.Category) error {
	existing, err := first[entity.Category](r.txn, tableCategories, "id", c.ID)
	if err != nil || existing == nil {
		return err
	}
	return r.save(c)
}

func (r *categoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	rows, err := all[entity.Category](r.txn, tableCategories, "name")
	if err != nil {
		return nil, err
	}
	list := make([]*entity.Category, 0, len(rows))
	for _, c := range rows {
		out := *c
		list = append(list, &out)
	}
	return list, nil
}

func (r *categoryRepo) Delete(_ context.Context, id string) error {
	for _, table := range []string{tableAttributes, tableProducts} {
		child, err := r.txn.First(table, "category", id)
		if err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		if child != nil {
			return fmt.Errorf("delete category: %w", domain.ErrConflict)
		}
	}
	if _, err := r.txn.DeleteAll(tableCategories, "id", id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (r *categoryRepo) save(c *entity.Category) error {
	other, err := first[entity.Category](r.txn, tableCategories, "name", c.Name)
	if err != nil {
		return err
	}
	if other != nil && other.ID != c.ID {
		return fmt.Errorf("category name: %w", domain.ErrDuplicate)
	}
	row := *c
	if err := r.txn.Insert(tableCategories, &row); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

type attributeRepo struct{ txn *memdb.Txn }

func (r *attributeRepo) Create(_ context.Context, a *entity.AttributeDefinition) error {
	existing, err := first[entity.AttributeDefinition](r.txn, tableAttributes, "id", a.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("insert attribute: %w", domain.ErrDuplicate)
	}
	category, err := first[entity.Category](r.txn, tableCategories, "id", a.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("insert attribute: %w", domain.ErrConflict)
	}
	return r.save(a)
}

func (r *attributeRepo) GetByID(_ context.Context, categoryID, id string) (*entity.AttributeDefinition, error) {
	a, err := first[entity.AttributeDefinition](r.txn, tableAttributes, "id", id)
	if err != nil || a == nil || a.CategoryID != categoryID {
		return nil, err
	}
	out := copyAttribute(a)
	return &out, nil
}

func (r *attributeRepo) ListByCategory(_ context.Context, categoryID string) ([]*entity.AttributeDefinition, error) {
	rows, err := all[entity.AttributeDefinition](r.txn, tableAttributes, "category", categoryID)
	if err != nil {
		return nil, err
	}
	list := make([]*entity.AttributeDefinition, 0, len(rows))
	for _, a := range rows {
		out := copyAttribute(a)
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *attributeRepo) Update(_ context.Context, a *entity.AttributeDefinition) error {
	existing, err := first[entity.AttributeDefinition](r.txn, tableAttributes, "id", a.ID)
	if err != nil || existing == nil {
		return err
	}
	return r.save(a)
}

func (r *attributeRepo) Delete(_ context.Context, id string) error {
	value, err := r.txn.First(tableValues, "attribute", id)
	if err != nil {
		return fmt.Errorf("delete attribute: %w", err)
	}
	if value != nil {
		return fmt.Errorf("delete attribute: %w", domain.ErrConflict)
	}
	if _, err := r.txn.DeleteAll(tableAttributes, "id", id); err != nil {
		return fmt.Errorf("delete attribute: %w", err)
	}
	return nil
}

func (r *attributeRepo) DeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	rows, err := all[entity.AttributeDefinition](r.txn, tableAttributes, "category", categoryID)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, a := range rows {
		if err := r.Delete(ctx, a.ID); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (r *attributeRepo) save(a *entity.AttributeDefinition) error {
	other, err := first[entity.AttributeDefinition](r.txn, tableAttributes, "category_name", a.CategoryID, a.Name)
	if err != nil {
		return err
	}
	if other != nil && other.ID != a.ID {
		return fmt.Errorf("attribute name: %w", domain.ErrDuplicate)
	}
	row := copyAttribute(a)
	if err := r.txn.Insert(tableAttributes, &row); err != nil {
		return fmt.Errorf("insert attribute: %w", err)
	}
	return nil
}

func copyAttribute(a *entity.AttributeDefinition) entity.AttributeDefinition {
	out := *a
	out.Options = append([]string(nil), a.Options...)
	return out
}

type productRepo struct {
	txn *memdb.Txn
	seq *atomic.Int64
}

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	existing, err := first[productRow](r.txn, tableProducts, "id", p.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("insert product: %w", domain.ErrDuplicate)
	}
	category, err := first[entity.Category](r.txn, tableCategories, "id", p.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("insert product: %w", domain.ErrConflict)
	}
	return r.save(productRow{Product: *p, seq: r.seq.Add(1)})
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	row, err := first[productRow](r.txn, tableProducts, "id", id)
	if err != nil || row == nil {
		return nil, err
	}
	p := row.Product
	return &p, nil
}

// GetForUpdate no necesita bloqueo adicional: Run ya serializa las transacciones de escritura.
func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	existing, err := first[productRow](r.txn, tableProducts, "id", p.ID)
	if err != nil || existing == nil {
		return err
	}
	row := productRow{Product: *p, seq: existing.seq}
	row.CategoryID = existing.CategoryID
	return r.save(row)
}

func (r *productRepo) List(_ context.Context) ([]*entity.Product, error) {
	rows, err := all[productRow](r.txn, tableProducts, "id")
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})
	list := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		p := row.Product
		list = append(list, &p)
	}
	return list, nil
}

func (r *productRepo) CountByCategory(_ context.Context, categoryID string) (int, error) {
	rows, err := all[productRow](r.txn, tableProducts, "category", categoryID)
	return len(rows), err
}

func (r *productRepo) Delete(_ context.Context, id string) error {
	value, err := r.txn.First(tableValues, "product", id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if value != nil {
		return fmt.Errorf("delete product: %w", domain.ErrConflict)
	}
	if _, err := r.txn.DeleteAll(tableProducts, "id", id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *productRepo) save(row productRow) error {
	other, err := first[productRow](r.txn, tableProducts, "sku", row.SKU)
	if err != nil {
		return err
	}
	if other != nil && other.ID != row.ID {
		return fmt.Errorf("product sku: %w", domain.ErrDuplicate)
	}
	if err := r.txn.Insert(tableProducts, &row); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

type valueRepo struct{ txn *memdb.Txn }

func (r *valueRepo) Upsert(_ context.Context, v *entity.AttributeValue) error {
	product, err := first[productRow](r.txn, tableProducts, "id", v.ProductID)
	if err != nil {
		return err
	}
	attr, err := first[entity.AttributeDefinition](r.txn, tableAttributes, "id", v.AttributeDefinitionID)
	if err != nil {
		return err
	}
	if product == nil || attr == nil {
		return fmt.Errorf("upsert attribute value: %w", domain.ErrConflict)
	}
	existing, err := first[entity.AttributeValue](r.txn, tableValues, "product_attribute", v.ProductID, v.AttributeDefinitionID)
	if err != nil {
		return err
	}
	if existing != nil {
		v.ID = existing.ID
		v.CreatedAt = existing.CreatedAt
	}
	row := *v
	if err := r.txn.Insert(tableValues, &row); err != nil {
		return fmt.Errorf("upsert attribute value: %w", err)
	}
	return nil
}

func (r *valueRepo) ListByProduct(_ context.Context, productID string) ([]*entity.ResolvedAttributeValue, error) {
	rows, err := all[entity.AttributeValue](r.txn, tableValues, "product", productID)
	if err != nil {
		return nil, err
	}
	list := make([]*entity.ResolvedAttributeValue, 0, len(rows))
	for _, v := range rows {
		attr, err := first[entity.AttributeDefinition](r.txn, tableAttributes, "id", v.AttributeDefinitionID)
		if err != nil {
			return nil, err
		}
		resolved := &entity.ResolvedAttributeValue{AttributeValue: *v}
		if attr != nil {
			resolved.AttributeName = attr.Name
		}
		list = append(list, resolved)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].AttributeName < list[j].AttributeName })
	return list, nil
}

func (r *valueRepo) DeleteByProduct(_ context.Context, productID string) (int64, error) {
	n, err := r.txn.DeleteAll(tableValues, "product", productID)
	if err != nil {
		return 0, fmt.Errorf("delete values by product: %w", err)
	}
	return int64(n), nil
}

func (r *valueRepo) DeleteByAttribute(_ context.Context, attributeID string) (int64, error) {
	n, err := r.txn.DeleteAll(tableValues, "attribute", attributeID)
	if err != nil {
		return 0, fmt.Errorf("delete values by attribute: %w", err)
	}
	return int64(n), nil
}

func (r *valueRepo) DeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	attrs, err := all[entity.AttributeDefinition](r.txn, tableAttributes, "category", categoryID)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, a := range attrs {
		n, err := r.DeleteByAttribute(ctx, a.ID)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
