package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// ErrConceptoFaltante: el catálogo no tiene el concepto de retención requerido
	// para la combinación tipo de transacción / tipo de persona. Es un error de
	// configuración: el motor se niega a emitir un asiento omitiendo una retención
	// legalmente exigida.
	ErrConceptoFaltante = errors.New("concepto de retención no configurado en el catálogo")

	// ErrAsientoDesbalanceado: el total débito no coincide con el total crédito.
	// Nunca debe ocurrir con entradas correctas; si se detecta, se aborta la
	// emisión del asiento en lugar de retornarlo desbalanceado.
	ErrAsientoDesbalanceado = errors.New("asiento contable desbalanceado: débitos y créditos no coinciden")

	// ErrCantidadExcedida: la cantidad solicitada supera la disponible en la
	// etapa del ciclo orden -> recepción -> facturación -> devolución.
	ErrCantidadExcedida = errors.New("cantidad excede la disponible en la etapa")

	// ErrFacturaDuplicada: ya existe una factura del mismo proveedor con el mismo
	// número (constraint único proveedor+número en la persistencia).
	ErrFacturaDuplicada = errors.New("factura duplicada para el proveedor")

	// ErrFacturaYaCausada: la factura ya tiene asiento contable asociado;
	// a lo sumo un asiento por factura.
	ErrFacturaYaCausada = errors.New("la factura ya fue causada contablemente")
)
