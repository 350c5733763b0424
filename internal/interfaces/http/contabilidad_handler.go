package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/compras-pro/internal/application/contabilidad"
	"github.com/tu-usuario/compras-pro/internal/application/dto"
	"github.com/tu-usuario/compras-pro/internal/domain"
)

// ContabilidadHandler expone la causación de facturas y la simulación
// de retenciones.
type ContabilidadHandler struct {
	causar  *contabilidad.CausarFacturaUseCase
	simular *contabilidad.SimularRetencionesUseCase
}

// NewContabilidadHandler construye el handler.
func NewContabilidadHandler(causar *contabilidad.CausarFacturaUseCase, simular *contabilidad.SimularRetencionesUseCase) *ContabilidadHandler {
	return &ContabilidadHandler{causar: causar, simular: simular}
}

// CausarFactura emite el asiento de causación de la factura.
// POST /api/facturas/:id/causar
func (h *ContabilidadHandler) CausarFactura(c *fiber.Ctx) error {
	resp, err := h.causar.Causar(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
		case errors.Is(err, domain.ErrFacturaYaCausada):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "FACTURA_YA_CAUSADA", Message: err.Error()})
		case errors.Is(err, domain.ErrConceptoFaltante):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "CONCEPTO_FALTANTE", Message: err.Error()})
		case errors.Is(err, domain.ErrAsientoDesbalanceado):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "ASIENTO_DESBALANCEADO", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	// Una validación fallida no es un error del servidor: se devuelve el
	// detalle para que el cliente corrija la causa.
	if !resp.Validacion.EsValida {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
	}
	return c.JSON(resp)
}

// SimularRetenciones calcula las retenciones de una operación hipotética
// sin persistir nada.
// POST /api/retenciones/simular
func (h *ContabilidadHandler) SimularRetenciones(c *fiber.Ctx) error {
	var in dto.SimularRetencionesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resultados, err := h.simular.Simular(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resultados)
}
