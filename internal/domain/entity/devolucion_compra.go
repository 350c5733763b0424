package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineaDevolucionCompra es una línea devuelta, referenciando la línea de orden.
type LineaDevolucionCompra struct {
	ID           string
	DevolucionID string
	LineaOrdenID string
	ProductoID   string
	Cantidad     decimal.Decimal
	Subtotal     decimal.Decimal
	Descuento    decimal.Decimal
	IVA          decimal.Decimal
	Total        decimal.Decimal
}

// DevolucionCompra registra mercancía devuelta al proveedor sobre una factura.
type DevolucionCompra struct {
	ID          string
	FacturaID   string
	ProveedorID string
	Fecha       time.Time
	Motivo      string
	Subtotal    decimal.Decimal
	Descuento   decimal.Decimal
	IVA         decimal.Decimal
	Total       decimal.Decimal
	Lineas      []LineaDevolucionCompra
	CreatedAt   time.Time
}
