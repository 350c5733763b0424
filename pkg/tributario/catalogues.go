// Package tributario contiene catálogos y utilidades del régimen tributario
// colombiano usados por el motor de retenciones: tipos de retención, tipos de
// persona y régimen, tabla UVT, dígito de verificación del NIT y redondeo a
// peso colombiano.
package tributario

// =============================================================================
// Tipos de retención practicadas al proveedor en la causación de compras.
// =============================================================================

const (
	RetencionFuente = "RETEFUENTE" // Retención en la fuente a título de renta
	RetencionIVA    = "RETEIVA"    // Retención de IVA (Art. 437-1 E.T.)
	RetencionICA    = "RETEICA"    // Retención de industria y comercio (municipal)
)

// =============================================================================
// Tipo de persona del proveedor (RUT).
// =============================================================================

const (
	PersonaNatural   = "NATURAL"
	PersonaJuridica  = "JURIDICA"
	PersonaCualquier = "ANY" // el concepto aplica sin distinción
)

// =============================================================================
// Condición de declarante de renta y régimen del proveedor.
// =============================================================================

const (
	RegimenOrdinario = "ORDINARIO"
	RegimenSimple    = "REGIMEN_SIMPLE" // Régimen Simple de Tributación (O-47): no se practica retefuente

	DeclaranteRenta   = "DECLARANTE"
	NoDeclaranteRenta = "NO_DECLARANTE"
	DeclaranteAny     = "ANY"
)

// =============================================================================
// Tipo de transacción que determina la familia de conceptos (compras/servicios).
// =============================================================================

const (
	TransaccionBienes    = "BIENES"
	TransaccionServicios = "SERVICIOS"
	TransaccionAmbos     = "AMBOS"
)

// =============================================================================
// Tabla 17 - Responsabilidades fiscales DIAN (Anexo Técnico 1.9 - 13.2.7.1)
// relevantes para decidir si se practica retención al proveedor.
// =============================================================================

const (
	ResponsabilidadGranContribuyente = "O-13" // Gran contribuyente
	ResponsabilidadAutorretenedor    = "O-15" // Autorretenedor: el comprador no practica retefuente
	ResponsabilidadAgenteReteIVA     = "O-23" // Agente de retención de IVA
	ResponsabilidadRegimenSimple     = "O-47" // Régimen Simple de Tributación – SIMPLE
	ResponsabilidadResponsableIVA    = "O-48" // Responsable de IVA
	ResponsabilidadNoResponsableIVA  = "O-49" // No responsable de IVA
)

// =============================================================================
// Códigos de impuesto DIAN (Tabla 11 - Anexo 1.9 - 13.2.2).
// =============================================================================

const (
	CodImpIVA = "01" // IVA
	CodImpICA = "03" // ICA
	CodImpINC = "04" // Impuesto Nacional al Consumo
)
