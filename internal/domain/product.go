package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// MinExpiryYear is the earliest expiry year accepted as a real date.
const MinExpiryYear = 2000

// Product is a catalog record. Treat it as a value: edits build a new Product
// and go through Catalog.Update.
type Product struct {
	Code      string          `json:"code"       validate:"notblank"`
	Name      string          `json:"name"       validate:"notblank"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gte=0"`
	Stock     int             `json:"stock"      validate:"gte=0"`
	Expiry    time.Time       `json:"expiry"     validate:"plausibledate"`
}

var productValidate *validator.Validate

func init() {
	productValidate = validator.New()
	_ = productValidate.RegisterValidation("notblank", validators.NotBlank)
	_ = productValidate.RegisterValidation("plausibledate", validatePlausibleDate)
	productValidate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
}

// decimalValue exposes a decimal to numeric tags. Only the sign matters to
// the rules here, so the float approximation is safe.
func decimalValue(v reflect.Value) interface{} {
	d, ok := v.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	return float64(d.Sign())
}

func validatePlausibleDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return t.Year() >= MinExpiryYear
}

// NewProduct builds a validated Product. On error the zero Product is returned.
func NewProduct(code, name, unit string, unitPrice decimal.Decimal, stock int, expiry time.Time) (Product, error) {
	p := Product{
		Code:      code,
		Name:      name,
		Unit:      unit,
		UnitPrice: unitPrice,
		Stock:     stock,
		Expiry:    expiry,
	}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Validate checks the construction rules and reports the first violation as
// a *ValidationError.
func (p Product) Validate() error {
	err := productValidate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	fe := verrs[0]
	field := fieldNames[fe.Field()]
	return &ValidationError{Field: field, Reason: reasons[field]}
}

var fieldNames = map[string]string{
	"Code":      "code",
	"Name":      "name",
	"UnitPrice": "unit_price",
	"Stock":     "stock",
	"Expiry":    "expiry",
}

var reasons = map[string]string{
	"code":       "must not be empty",
	"name":       "must not be empty",
	"unit_price": "must not be negative",
	"stock":      "must not be negative",
	"expiry":     fmt.Sprintf("must not be before %d", MinExpiryYear),
}

// Key returns the catalog identity of the product.
func (p Product) Key() string { return CodeKey(p.Code) }

// WithStock returns a copy of p holding stock units.
func (p Product) WithStock(stock int) Product {
	p.Stock = stock
	return p
}

// InventoryValue is UnitPrice * Stock.
func (p Product) InventoryValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Stock)))
}

func (p Product) String() string {
	return fmt.Sprintf("[%s] %s (%s) %s x %d, exp %s",
		p.Code, p.Name, p.Unit, p.UnitPrice.StringFixed(2), p.Stock, p.Expiry.Format(time.DateOnly))
}

// ProductPatch carries optional replacements for an existing product. Nil
// fields keep the current value.
type ProductPatch struct {
	Name      *string
	Unit      *string
	UnitPrice *decimal.Decimal
	Stock     *int
	Expiry    *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (pp ProductPatch) IsEmpty() bool {
	return pp.Name == nil && pp.Unit == nil && pp.UnitPrice == nil && pp.Stock == nil && pp.Expiry == nil
}

// Merge builds a new validated Product from p with the patch applied.
func (p Product) Merge(pp ProductPatch) (Product, error) {
	next := p
	if pp.Name != nil && strings.TrimSpace(*pp.Name) != "" {
		next.Name = *pp.Name
	}
	if pp.Unit != nil && strings.TrimSpace(*pp.Unit) != "" {
		next.Unit = *pp.Unit
	}
	if pp.UnitPrice != nil {
		next.UnitPrice = *pp.UnitPrice
	}
	if pp.Stock != nil {
		next.Stock = *pp.Stock
	}
	if pp.Expiry != nil {
		next.Expiry = *pp.Expiry
	}
	return NewProduct(next.Code, next.Name, next.Unit, next.UnitPrice, next.Stock, next.Expiry)
}

// ProductInput is raw product data as it arrives from an adapter.
type ProductInput struct {
	Code      string
	Name      string
	Unit      string
	UnitPrice decimal.Decimal
	Stock     int
	Expiry    time.Time
}

// Build validates the input into a Product, normalizing the code first.
func (in ProductInput) Build() (Product, error) {
	return NewProduct(NormalizeCode(in.Code), in.Name, in.Unit, in.UnitPrice, in.Stock, in.Expiry)
}
