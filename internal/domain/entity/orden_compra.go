package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la orden de compra.
const (
	OrdenBorrador = "BORRADOR"
	OrdenAprobada = "APROBADA" // sus líneas entran al ciclo recepción/facturación
	OrdenCerrada  = "CERRADA"
)

// LineaOrdenCompra es una línea de orden con los contadores del ciclo
// orden -> recepción -> facturación -> devolución. Cada contador es monótono
// y está acotado por la etapa anterior; solo un proceso explícito de reversión
// (fuera de este núcleo) los disminuye.
type LineaOrdenCompra struct {
	ID                 string
	OrdenID            string
	ProductoID         string
	Descripcion        string
	CantidadOrdenada   decimal.Decimal
	CantidadRecibida   decimal.Decimal // crece con entradas de almacén, tope: ordenada
	CantidadFacturada  decimal.Decimal // crece con facturas, tope: recibida
	CantidadDevuelta   decimal.Decimal // crece con devoluciones, tope: facturada
	CantidadPendiente  decimal.Decimal // cantidad seleccionada para la etapa en curso (UI)
	PrecioUnitario     decimal.Decimal
	TarifaIVA          decimal.Decimal // porcentaje (19, 5, 0)
	TarifaDescuento    decimal.Decimal // porcentaje
}

// OrdenCompra es la cabecera de la orden.
type OrdenCompra struct {
	ID          string
	ProveedorID string
	Numero      string
	Fecha       time.Time
	Estado      string
	Subtotal    decimal.Decimal
	Descuento   decimal.Decimal
	IVA         decimal.Decimal
	Total       decimal.Decimal
	Lineas      []LineaOrdenCompra
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
