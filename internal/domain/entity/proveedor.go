package entity

import "time"

// PerfilTributario describe la condición fiscal del proveedor frente al
// comprador; gobierna qué conceptos de retención aplican.
type PerfilTributario struct {
	TipoPersona      string // tributario.PersonaNatural | PersonaJuridica
	DeclaranteRenta  bool   // obligado a declarar renta (afecta tarifa de retefuente)
	Autorretenedor   bool   // O-15: el comprador no practica retefuente
	Regimen          string // tributario.RegimenOrdinario | RegimenSimple
	InscritoICALocal bool   // inscrito en industria y comercio del municipio del comprador
}

// Proveedor es el emisor de la factura de compra.
type Proveedor struct {
	ID          string
	NIT         string // NIT completo con dígito de verificación
	RazonSocial string
	Perfil      PerfilTributario
	TerceroID   string // registro en el directorio de terceros (puede crearse tarde)
	Activo      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
