package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/query"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, name, contact_person, email, phone, address, city, state, zip_code,
	country, tax_id, payment_terms, is_active, created_at, updated_at`

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor y asigna su ID.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	sql := `
		INSERT INTO suppliers (name, contact_person, email, phone, address, city, state, zip_code,
			country, tax_id, payment_terms, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`
	err := r.q.QueryRow(ctx, sql,
		s.Name, s.ContactPerson, s.Email, s.Phone, s.Address, s.City, s.State, s.ZipCode,
		s.Country, s.TaxID, s.PaymentTerms, s.IsActive, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return translateWriteError("insert supplier", err)
	}
	return nil
}

// Save sobrescribe los campos mutables del proveedor. Igual que en productos,
// is_active nunca vuelve de false a true y s.IsActive refleja el valor persistido.
func (r *SupplierRepo) Save(ctx context.Context, s *entity.Supplier) error {
	sql := `
		UPDATE suppliers SET name = $2, contact_person = $3, email = $4, phone = $5, address = $6,
			city = $7, state = $8, zip_code = $9, country = $10, tax_id = $11, payment_terms = $12,
			is_active = is_active AND $13, updated_at = $14
		WHERE id = $1
		RETURNING is_active`
	err := r.q.QueryRow(ctx, sql,
		s.ID, s.Name, s.ContactPerson, s.Email, s.Phone, s.Address,
		s.City, s.State, s.ZipCode, s.Country, s.TaxID, s.PaymentTerms,
		s.IsActive, s.UpdatedAt,
	).Scan(&s.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return translateWriteError("update supplier", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID (activo o no).
func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("get supplier", err)
	}
	return s, nil
}

// ListActive lista proveedores activos paginados.
func (r *SupplierRepo) ListActive(ctx context.Context, page query.Page) ([]*entity.Supplier, error) {
	sql := fmt.Sprintf(`SELECT %s FROM suppliers WHERE is_active ORDER BY %s LIMIT $1 OFFSET $2`,
		supplierColumns, page.OrderBy())
	rows, err := r.q.Query(ctx, sql, page.Limit(), page.Offset())
	if err != nil {
		return nil, storageError("list suppliers", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, storageError("list suppliers", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list suppliers", err)
	}
	return list, nil
}

// CountActive cuenta los proveedores activos.
func (r *SupplierRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers WHERE is_active`).Scan(&n); err != nil {
		return 0, storageError("count suppliers", err)
	}
	return n, nil
}

func scanSupplier(row rowScanner) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(
		&s.ID, &s.Name, &s.ContactPerson, &s.Email, &s.Phone, &s.Address, &s.City, &s.State, &s.ZipCode,
		&s.Country, &s.TaxID, &s.PaymentTerms, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
