package dto

import "github.com/shopspring/decimal"

// CrearProveedorRequest alta de proveedor con su perfil tributario.
type CrearProveedorRequest struct {
	NIT         string                  `json:"nit"` // con dígito de verificación
	RazonSocial string                  `json:"razon_social"`
	Perfil      PerfilTributarioRequest `json:"perfil"`
}

// ProveedorResponse proveedor registrado.
type ProveedorResponse struct {
	ID          string                  `json:"id"`
	NIT         string                  `json:"nit"`
	RazonSocial string                  `json:"razon_social"`
	Perfil      PerfilTributarioRequest `json:"perfil"`
	TerceroID   string                  `json:"tercero_id,omitempty"`
	Activo      bool                    `json:"activo"`
}

// ConceptoResponse concepto del catálogo de retenciones.
type ConceptoResponse struct {
	Codigo          string          `json:"codigo"`
	Nombre          string          `json:"nombre"`
	Tipo            string          `json:"tipo"`
	Tarifa          decimal.Decimal `json:"tarifa"`
	BaseMinimaUVT   decimal.Decimal `json:"base_minima_uvt"`
	BaseMinimaPesos decimal.Decimal `json:"base_minima_pesos"`
	TipoPersona     string          `json:"tipo_persona"`
	Declarante      string          `json:"declarante"`
	TipoTransaccion string          `json:"tipo_transaccion"`
	CuentaContable  string          `json:"cuenta_contable,omitempty"`
	CodigoMunicipio string          `json:"codigo_municipio,omitempty"`
}

// CuentaResponse cuenta del plan de cuentas.
type CuentaResponse struct {
	Codigo          string `json:"codigo"`
	Nombre          string `json:"nombre"`
	Tipo            string `json:"tipo"`
	RequiereTercero bool   `json:"requiere_tercero"`
	Activa          bool   `json:"activa"`
}

// PeriodoResponse periodo contable.
type PeriodoResponse struct {
	Ano     int  `json:"ano"`
	Mes     int  `json:"mes"`
	Abierto bool `json:"abierto"`
}
