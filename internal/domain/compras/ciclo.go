// Package compras implementa el ciclo de vida de las líneas de orden de compra:
// orden -> recepción -> facturación -> devolución. Cada contador es monótono y
// está acotado por la etapa anterior; un intento de exceder lo disponible falla
// con domain.ErrCantidadExcedida y deja la línea intacta.
package compras

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/compras-pro/internal/domain"
	"github.com/tu-usuario/compras-pro/internal/domain/entity"
)

// Etapas del ciclo de la línea.
const (
	EtapaRecepcion   = "RECEPCION"
	EtapaFacturacion = "FACTURACION"
	EtapaDevolucion  = "DEVOLUCION"
)

// Disponible devuelve la cantidad que la etapa aún puede consumir de la línea.
func Disponible(l *entity.LineaOrdenCompra, etapa string) decimal.Decimal {
	switch etapa {
	case EtapaRecepcion:
		return l.CantidadOrdenada.Sub(l.CantidadRecibida)
	case EtapaFacturacion:
		return l.CantidadRecibida.Sub(l.CantidadFacturada)
	case EtapaDevolucion:
		return l.CantidadFacturada.Sub(l.CantidadDevuelta)
	default:
		return decimal.Zero
	}
}

// RegistrarRecepcion suma una entrada de almacén a la línea.
// Tope: cantidad ordenada.
func RegistrarRecepcion(l *entity.LineaOrdenCompra, cantidad decimal.Decimal) error {
	if err := validarCantidad(l, cantidad, EtapaRecepcion); err != nil {
		return err
	}
	l.CantidadRecibida = l.CantidadRecibida.Add(cantidad)
	return nil
}

// RegistrarFacturacion suma cantidad facturada a la línea.
// Tope: cantidad recibida a la fecha.
func RegistrarFacturacion(l *entity.LineaOrdenCompra, cantidad decimal.Decimal) error {
	if err := validarCantidad(l, cantidad, EtapaFacturacion); err != nil {
		return err
	}
	l.CantidadFacturada = l.CantidadFacturada.Add(cantidad)
	return nil
}

// RegistrarDevolucion suma cantidad devuelta al proveedor.
// Tope: cantidad facturada a la fecha.
func RegistrarDevolucion(l *entity.LineaOrdenCompra, cantidad decimal.Decimal) error {
	if err := validarCantidad(l, cantidad, EtapaDevolucion); err != nil {
		return err
	}
	l.CantidadDevuelta = l.CantidadDevuelta.Add(cantidad)
	return nil
}

// SeleccionarTodoDisponible fija la cantidad pendiente de cada línea en su
// disponible actual para la etapa. Es idempotente sobre el estado resultante:
// la segunda llamada encuentra el mismo disponible y produce el mismo estado.
func SeleccionarTodoDisponible(lineas []entity.LineaOrdenCompra, etapa string) {
	for i := range lineas {
		lineas[i].CantidadPendiente = Disponible(&lineas[i], etapa)
	}
}

// validarCantidad verifica cantidad positiva y cupo de la etapa sin mutar nada.
func validarCantidad(l *entity.LineaOrdenCompra, cantidad decimal.Decimal, etapa string) error {
	if l == nil {
		return domain.ErrInvalidInput
	}
	if !cantidad.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	disponible := Disponible(l, etapa)
	if cantidad.GreaterThan(disponible) {
		return fmt.Errorf("%w: etapa %s de la línea %s: solicitado %s, disponible %s",
			domain.ErrCantidadExcedida, etapa, l.ID, cantidad.String(), disponible.String())
	}
	return nil
}
