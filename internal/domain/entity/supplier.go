package entity

import (
	"strings"
	"time"
)

// DefaultCountry país asignado cuando el proveedor no indica uno.
const DefaultCountry = "USA"

// Supplier representa un proveedor. La relación con productos es unidireccional:
// el producto guarda SupplierID y los productos del proveedor se obtienen por consulta.
type Supplier struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name" validate:"notblank,max=100"`
	ContactPerson string    `json:"contact_person,omitempty" validate:"max=100"`
	Email         string    `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Phone         string    `json:"phone,omitempty" validate:"max=20"`
	Address       string    `json:"address,omitempty" validate:"max=255"`
	City          string    `json:"city,omitempty" validate:"max=50"`
	State         string    `json:"state,omitempty" validate:"max=50"`
	ZipCode       string    `json:"zip_code,omitempty" validate:"max=20"`
	Country       string    `json:"country,omitempty" validate:"max=50"`
	TaxID         string    `json:"tax_id,omitempty" validate:"max=50"`
	PaymentTerms  string    `json:"payment_terms,omitempty" validate:"max=100"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewSupplier construye un proveedor activo con el país por defecto.
func NewSupplier(name string) *Supplier {
	return &Supplier{Name: name, Country: DefaultCountry, IsActive: true}
}

// FullAddress concatena dirección, ciudad, estado, código postal y país.
// Partes vacías se omiten; el código postal se une al estado con un espacio.
func (s *Supplier) FullAddress() string {
	var sb strings.Builder
	appendPart := func(part, sep string) {
		if strings.TrimSpace(part) == "" {
			return
		}
		if sb.Len() > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(part)
	}
	appendPart(s.Address, ", ")
	appendPart(s.City, ", ")
	appendPart(s.State, ", ")
	appendPart(s.ZipCode, " ")
	appendPart(s.Country, ", ")
	return sb.String()
}

// Deactivate marca el proveedor como inactivo. Sus productos conservan la referencia.
func (s *Supplier) Deactivate(now time.Time) bool {
	if !s.IsActive {
		return false
	}
	s.IsActive = false
	s.UpdatedAt = now
	return true
}
