// Package retencion implementa el motor de retenciones colombianas
// (retención en la fuente, retención de IVA y retención de ICA) como servicio
// de dominio puro: mismas entradas, mismas salidas, sin efectos secundarios.
//
// Las condiciones de negocio que impiden practicar una retención (base bajo el
// umbral, proveedor exento por régimen) NO son errores: se reportan como
// Aplicada=false con Motivo. El único fallo posible es de configuración, cuando
// el catálogo carece de un concepto exigido para la combinación dada
// (domain.ErrConceptoFaltante).
package retencion

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/compras-pro/internal/domain"
	"github.com/tu-usuario/compras-pro/internal/domain/entity"
	"github.com/tu-usuario/compras-pro/pkg/tributario"
)

// Tarifa general de IVA cuando el caller no la suministra.
var tarifaIVAPorDefecto = decimal.NewFromInt(19)

var cien = decimal.NewFromInt(100)
var mil = decimal.NewFromInt(1000)

// ResultadoRetencion es el resultado de evaluar un tipo de retención.
type ResultadoRetencion struct {
	Tipo     string                    // tributario.RetencionFuente | RetencionIVA | RetencionICA
	Concepto *entity.ConceptoRetencion // nil cuando la exención es previa a seleccionar concepto
	Base     decimal.Decimal           // base sobre la que se evaluó (IVA para reteiva)
	Valor    decimal.Decimal           // retención en pesos enteros; cero si no aplicada
	Aplicada bool
	Motivo   string // presente solo cuando Aplicada es false
}

// CalculoInput agrupa las entradas del cálculo. Conceptos es el catálogo leído
// por el caller (puerto de solo lectura); el motor no toca repositorios.
type CalculoInput struct {
	Base            decimal.Decimal // base gravable de la compra (subtotal - descuento)
	TarifaIVA       decimal.Decimal // porcentaje; cero = tarifa general 19
	Perfil          entity.PerfilTributario
	TipoTransaccion string // tributario.TransaccionBienes | TransaccionServicios
	Conceptos       []entity.ConceptoRetencion
	ValorUVT        decimal.Decimal
	CodigoMunicipio string // municipio del comprador, para reteica
}

// Calcular evalúa las tres retenciones en orden fijo: retefuente, reteiva, reteica.
// Base cero o negativa produce los tres resultados no aplicados.
func Calcular(in CalculoInput) ([]ResultadoRetencion, error) {
	if !in.Base.GreaterThan(decimal.Zero) {
		motivo := "base gravable no positiva"
		return []ResultadoRetencion{
			{Tipo: tributario.RetencionFuente, Base: in.Base, Motivo: motivo},
			{Tipo: tributario.RetencionIVA, Base: decimal.Zero, Motivo: motivo},
			{Tipo: tributario.RetencionICA, Base: in.Base, Motivo: motivo},
		}, nil
	}

	fuente, err := calcularFuente(in)
	if err != nil {
		return nil, err
	}
	iva, err := calcularIVA(in)
	if err != nil {
		return nil, err
	}
	ica, err := calcularICA(in)
	if err != nil {
		return nil, err
	}
	return []ResultadoRetencion{fuente, iva, ica}, nil
}

// calcularFuente evalúa la retención en la fuente a título de renta.
func calcularFuente(in CalculoInput) (ResultadoRetencion, error) {
	r := ResultadoRetencion{Tipo: tributario.RetencionFuente, Base: in.Base}

	// Exenciones por condición del proveedor, previas a la selección de concepto.
	if in.Perfil.Regimen == tributario.RegimenSimple {
		r.Motivo = "proveedor del Régimen Simple de Tributación: no se practica retención en la fuente"
		return r, nil
	}
	if in.Perfil.Autorretenedor {
		r.Motivo = "proveedor autorretenedor (O-15): se autorretiene"
		return r, nil
	}

	concepto, err := seleccionarConceptoFuente(in.Conceptos, in.TipoTransaccion, in.Perfil)
	if err != nil {
		return r, err
	}
	r.Concepto = concepto

	umbral := concepto.UmbralPesos(in.ValorUVT)
	if in.Base.LessThan(umbral) {
		r.Motivo = fmt.Sprintf("base gravable (%s) inferior a la base mínima del concepto %s (%s)",
			in.Base.StringFixed(0), concepto.Codigo, umbral.StringFixed(0))
		return r, nil
	}

	r.Valor = tributario.RedondearPeso(in.Base.Mul(concepto.Tarifa).Div(cien))
	r.Aplicada = true
	return r, nil
}

// calcularIVA evalúa la retención de IVA (tarifa del concepto, 15% por norma).
// La base de comparación contra el umbral es el IVA de la operación, no el subtotal.
func calcularIVA(in CalculoInput) (ResultadoRetencion, error) {
	tarifaIVA := in.TarifaIVA
	if tarifaIVA.IsZero() {
		tarifaIVA = tarifaIVAPorDefecto
	}
	valorIVA := in.Base.Mul(tarifaIVA).Div(cien)
	r := ResultadoRetencion{Tipo: tributario.RetencionIVA, Base: valorIVA}

	concepto, err := seleccionarConcepto(in.Conceptos, tributario.RetencionIVA, in.TipoTransaccion, in.Perfil)
	if err != nil {
		return r, err
	}
	r.Concepto = concepto

	umbral := concepto.UmbralPesos(in.ValorUVT)
	if valorIVA.LessThan(umbral) {
		r.Motivo = fmt.Sprintf("IVA de la operación (%s) inferior a la base mínima del concepto %s (%s)",
			valorIVA.StringFixed(0), concepto.Codigo, umbral.StringFixed(0))
		return r, nil
	}

	r.Valor = tributario.RedondearPeso(valorIVA.Mul(concepto.Tarifa).Div(cien))
	r.Aplicada = true
	return r, nil
}

// calcularICA evalúa la retención de industria y comercio del municipio del
// comprador. La tarifa del concepto está expresada por mil.
func calcularICA(in CalculoInput) (ResultadoRetencion, error) {
	r := ResultadoRetencion{Tipo: tributario.RetencionICA, Base: in.Base}

	if !in.Perfil.InscritoICALocal {
		r.Motivo = "proveedor no inscrito en industria y comercio del municipio"
		return r, nil
	}

	concepto, err := seleccionarConceptoICA(in.Conceptos, in.TipoTransaccion, in.CodigoMunicipio)
	if err != nil {
		return r, err
	}
	r.Concepto = concepto

	umbral := concepto.UmbralPesos(in.ValorUVT)
	if in.Base.LessThan(umbral) {
		r.Motivo = fmt.Sprintf("base gravable (%s) inferior a la base mínima del concepto %s (%s)",
			in.Base.StringFixed(0), concepto.Codigo, umbral.StringFixed(0))
		return r, nil
	}

	r.Valor = tributario.RedondearPeso(in.Base.Mul(concepto.Tarifa).Div(mil))
	r.Aplicada = true
	return r, nil
}

// seleccionarConceptoFuente escoge el único concepto de retefuente para la
// combinación transacción/persona/declarante. Ante varios candidatos (conceptos
// genéricos con persona o declarante ANY) gana el más específico; eso resuelve
// la familia "honorarios" (servicios de persona natural vs jurídica).
func seleccionarConceptoFuente(conceptos []entity.ConceptoRetencion, tipoTransaccion string, perfil entity.PerfilTributario) (*entity.ConceptoRetencion, error) {
	return seleccionarConcepto(conceptos, tributario.RetencionFuente, tipoTransaccion, perfil)
}

func seleccionarConcepto(conceptos []entity.ConceptoRetencion, tipo, tipoTransaccion string, perfil entity.PerfilTributario) (*entity.ConceptoRetencion, error) {
	declarante := tributario.NoDeclaranteRenta
	if perfil.DeclaranteRenta {
		declarante = tributario.DeclaranteRenta
	}

	var mejor *entity.ConceptoRetencion
	mejorPuntaje := -1
	for i := range conceptos {
		c := &conceptos[i]
		if !c.Activo || c.Tipo != tipo || !c.AplicaA(tipoTransaccion) {
			continue
		}
		if c.TipoPersona != tributario.PersonaCualquier && c.TipoPersona != perfil.TipoPersona {
			continue
		}
		if c.Declarante != tributario.DeclaranteAny && c.Declarante != declarante {
			continue
		}
		// Especificidad: coincidencia exacta pesa más que comodín ANY.
		puntaje := 0
		if c.TipoPersona == perfil.TipoPersona {
			puntaje += 2
		}
		if c.Declarante == declarante {
			puntaje += 2
		}
		if c.TipoTransaccion == tipoTransaccion {
			puntaje++
		}
		if puntaje > mejorPuntaje {
			mejor, mejorPuntaje = c, puntaje
		}
	}
	if mejor == nil {
		return nil, fmt.Errorf("%w: tipo %s, transacción %s, persona %s, %s",
			domain.ErrConceptoFaltante, tipo, tipoTransaccion, perfil.TipoPersona, declarante)
	}
	return mejor, nil
}

// seleccionarConceptoICA escoge el concepto de reteica del municipio.
// Un concepto sin municipio actúa como tarifa por defecto.
func seleccionarConceptoICA(conceptos []entity.ConceptoRetencion, tipoTransaccion, codigoMunicipio string) (*entity.ConceptoRetencion, error) {
	var porDefecto *entity.ConceptoRetencion
	for i := range conceptos {
		c := &conceptos[i]
		if !c.Activo || c.Tipo != tributario.RetencionICA || !c.AplicaA(tipoTransaccion) {
			continue
		}
		if c.CodigoMunicipio == codigoMunicipio {
			return c, nil
		}
		if c.CodigoMunicipio == "" && porDefecto == nil {
			porDefecto = c
		}
	}
	if porDefecto != nil {
		return porDefecto, nil
	}
	return nil, fmt.Errorf("%w: reteica para el municipio %s, transacción %s",
		domain.ErrConceptoFaltante, codigoMunicipio, tipoTransaccion)
}

// TotalRetenido suma los valores aplicados de una lista de resultados.
func TotalRetenido(resultados []ResultadoRetencion) decimal.Decimal {
	total := decimal.Zero
	for _, r := range resultados {
		if r.Aplicada {
			total = total.Add(r.Valor)
		}
	}
	return total
}

// PorTipo devuelve el resultado de un tipo dado, o nil si no está.
func PorTipo(resultados []ResultadoRetencion, tipo string) *ResultadoRetencion {
	for i := range resultados {
		if resultados[i].Tipo == tipo {
			return &resultados[i]
		}
	}
	return nil
}
