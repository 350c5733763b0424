package dto

import "github.com/shopspring/decimal"

// LineaOrdenRequest línea de una orden de compra nueva.
type LineaOrdenRequest struct {
	ProductoID      string          `json:"product_id"`
	Descripcion     string          `json:"descripcion"`
	Cantidad        decimal.Decimal `json:"cantidad"`
	PrecioUnitario  decimal.Decimal `json:"precio_unitario"`
	TarifaIVA       decimal.Decimal `json:"tarifa_iva"`
	TarifaDescuento decimal.Decimal `json:"tarifa_descuento"`
}

// CrearOrdenRequest crea una orden de compra en borrador.
type CrearOrdenRequest struct {
	ProveedorID string              `json:"proveedor_id"`
	Numero      string              `json:"numero"`
	Lineas      []LineaOrdenRequest `json:"lineas"`
}

// LineaOrdenResponse línea de orden con contadores del ciclo.
type LineaOrdenResponse struct {
	ID                string          `json:"id"`
	ProductoID        string          `json:"product_id"`
	Descripcion       string          `json:"descripcion"`
	CantidadOrdenada  decimal.Decimal `json:"cantidad_ordenada"`
	CantidadRecibida  decimal.Decimal `json:"cantidad_recibida"`
	CantidadFacturada decimal.Decimal `json:"cantidad_facturada"`
	CantidadDevuelta  decimal.Decimal `json:"cantidad_devuelta"`
	PrecioUnitario    decimal.Decimal `json:"precio_unitario"`
	TarifaIVA         decimal.Decimal `json:"tarifa_iva"`
	TarifaDescuento   decimal.Decimal `json:"tarifa_descuento"`
}

// OrdenResponse orden de compra con totales y líneas.
type OrdenResponse struct {
	ID          string               `json:"id"`
	ProveedorID string               `json:"proveedor_id"`
	Numero      string               `json:"numero"`
	Fecha       string               `json:"fecha"`
	Estado      string               `json:"estado"`
	Subtotal    decimal.Decimal      `json:"subtotal"`
	Descuento   decimal.Decimal      `json:"descuento"`
	IVA         decimal.Decimal      `json:"iva"`
	Total       decimal.Decimal      `json:"total"`
	Lineas      []LineaOrdenResponse `json:"lineas"`
}

// CantidadLineaRequest cantidad a aplicar sobre una línea de orden.
type CantidadLineaRequest struct {
	LineaOrdenID string          `json:"linea_orden_id"`
	Cantidad     decimal.Decimal `json:"cantidad"`
}

// RegistrarRecepcionRequest entrada de almacén sobre líneas de una orden.
type RegistrarRecepcionRequest struct {
	OrdenID string                 `json:"orden_id"`
	Lineas  []CantidadLineaRequest `json:"lineas"`
}

// RegistrarFacturaRequest registra la factura del proveedor sobre una orden.
// Si Lineas está vacío se factura todo lo disponible (recibido − facturado).
type RegistrarFacturaRequest struct {
	OrdenID         string                 `json:"orden_id"`
	Numero          string                 `json:"numero"`
	Fecha           string                 `json:"fecha"` // YYYY-MM-DD; vacío = hoy
	TipoCompra      string                 `json:"tipo_compra"`      // INVENTARIO | ACTIVO_FIJO
	TipoTransaccion string                 `json:"tipo_transaccion"` // BIENES | SERVICIOS
	Lineas          []CantidadLineaRequest `json:"lineas"`
}

// FacturaResponse factura registrada con sus totales.
type FacturaResponse struct {
	ID          string          `json:"id"`
	OrdenID     string          `json:"orden_id"`
	ProveedorID string          `json:"proveedor_id"`
	Numero      string          `json:"numero"`
	Fecha       string          `json:"fecha"`
	TipoCompra  string          `json:"tipo_compra"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Descuento   decimal.Decimal `json:"descuento"`
	IVA         decimal.Decimal `json:"iva"`
	Total       decimal.Decimal `json:"total"`
	AsientoID   string          `json:"asiento_id,omitempty"`
}

// RegistrarDevolucionRequest devuelve mercancía facturada al proveedor.
type RegistrarDevolucionRequest struct {
	FacturaID string                 `json:"factura_id"`
	Motivo    string                 `json:"motivo"`
	Lineas    []CantidadLineaRequest `json:"lineas"`
}

// DevolucionResponse devolución registrada.
type DevolucionResponse struct {
	ID        string          `json:"id"`
	FacturaID string          `json:"factura_id"`
	Motivo    string          `json:"motivo"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	IVA       decimal.Decimal `json:"iva"`
	Total     decimal.Decimal `json:"total"`
}
