package usecase

import (
	"context"
	"sort"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/query"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeProducts implementa solo los métodos que usan los casos de uso probados.
type fakeProducts struct {
	repository.ProductRepository

	rows   map[int64]entity.Product
	nextID int64
	// createErr simula un constraint que salta en el INSERT (carrera entre transacciones).
	createErr error
	// beforeSave corre justo antes de escribir (otra transacción que confirma en medio).
	beforeSave func()
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{rows: map[int64]entity.Product{}}
}

func (f *fakeProducts) Create(_ context.Context, p *entity.Product) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	p.ID = f.nextID
	f.rows[p.ID] = *p
	return nil
}

// Save imita a los almacenes: is_active nunca vuelve a true.
func (f *fakeProducts) Save(_ context.Context, p *entity.Product) error {
	if f.beforeSave != nil {
		f.beforeSave()
	}
	stored, ok := f.rows[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsActive = p.IsActive && stored.IsActive
	f.rows[p.ID] = *p
	return nil
}

func (f *fakeProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeProducts) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range f.rows {
		if p.SKU == sku {
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	p, _ := f.GetBySKU(ctx, sku)
	return p != nil, nil
}

func (f *fakeProducts) ExistsByBarcode(_ context.Context, barcode string) (bool, error) {
	for _, p := range f.rows {
		if p.BarcodeValue() == barcode {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProducts) ListActive(_ context.Context, page query.Page) ([]*entity.Product, error) {
	active := f.active(func(*entity.Product) bool { return true })
	start := page.Offset()
	if start >= len(active) {
		return nil, nil
	}
	end := start + page.Limit()
	if end > len(active) {
		end = len(active)
	}
	return active[start:end], nil
}

func (f *fakeProducts) ListActiveByCategory(_ context.Context, categoryID int64) ([]*entity.Product, error) {
	return f.active(func(p *entity.Product) bool {
		return p.CategoryID != nil && *p.CategoryID == categoryID
	}), nil
}

func (f *fakeProducts) ListActiveBySupplier(_ context.Context, supplierID int64) ([]*entity.Product, error) {
	return f.active(func(p *entity.Product) bool {
		return p.SupplierID != nil && *p.SupplierID == supplierID
	}), nil
}

func (f *fakeProducts) CountActive(_ context.Context) (int64, error) {
	return int64(len(f.active(func(*entity.Product) bool { return true }))), nil
}

func (f *fakeProducts) CountBySupplier(_ context.Context, supplierID int64) (int64, error) {
	var n int64
	for _, p := range f.rows {
		if p.SupplierID != nil && *p.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}

func (f *fakeProducts) active(keep func(*entity.Product) bool) []*entity.Product {
	var out []*entity.Product
	for _, p := range f.rows {
		p := p
		if p.IsActive && keep(&p) {
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeSuppliers struct {
	rows   map[int64]entity.Supplier
	nextID int64
}

func newFakeSuppliers() *fakeSuppliers {
	return &fakeSuppliers{rows: map[int64]entity.Supplier{}}
}

func (f *fakeSuppliers) Create(_ context.Context, s *entity.Supplier) error {
	f.nextID++
	s.ID = f.nextID
	f.rows[s.ID] = *s
	return nil
}

func (f *fakeSuppliers) Save(_ context.Context, s *entity.Supplier) error {
	stored, ok := f.rows[s.ID]
	if !ok {
		return domain.ErrNotFound
	}
	s.IsActive = s.IsActive && stored.IsActive
	f.rows[s.ID] = *s
	return nil
}

func (f *fakeSuppliers) GetByID(_ context.Context, id int64) (*entity.Supplier, error) {
	s, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeSuppliers) ListActive(_ context.Context, _ query.Page) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range f.rows {
		s := s
		if s.IsActive {
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSuppliers) CountActive(ctx context.Context) (int64, error) {
	list, _ := f.ListActive(ctx, query.Page{})
	return int64(len(list)), nil
}

// fakeTx ejecuta fn sobre los mismos fakes y cuenta las transacciones.
type fakeTx struct {
	products  *fakeProducts
	suppliers *fakeSuppliers
	runs      int
}

func (t *fakeTx) Run(_ context.Context, fn func(repository.ProductRepository, repository.SupplierRepository) error) error {
	t.runs++
	return fn(t.products, t.suppliers)
}

type spyEvicter struct {
	calls [][]entity.Product
}

func (s *spyEvicter) Evict(_ context.Context, products ...*entity.Product) {
	call := make([]entity.Product, 0, len(products))
	for _, p := range products {
		call = append(call, *p)
	}
	s.calls = append(s.calls, call)
}

type fakePDF struct {
	title    string
	products []*entity.Product
}

func (f *fakePDF) GenerateCatalogPDF(_ context.Context, title string, products []*entity.Product) ([]byte, error) {
	f.title, f.products = title, products
	return []byte("%PDF-fake"), nil
}
