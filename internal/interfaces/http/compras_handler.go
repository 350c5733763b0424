package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/compras-pro/internal/application/compras"
	"github.com/tu-usuario/compras-pro/internal/application/dto"
	"github.com/tu-usuario/compras-pro/internal/domain"
)

// ComprasHandler maneja las peticiones HTTP del ciclo de compras.
type ComprasHandler struct {
	uc *compras.ComprasUseCase
}

// NewComprasHandler construye el handler.
func NewComprasHandler(uc *compras.ComprasUseCase) *ComprasHandler {
	return &ComprasHandler{uc: uc}
}

// CrearOrden crea una orden de compra en borrador.
// POST /api/ordenes
func (h *ComprasHandler) CrearOrden(c *fiber.Ctx) error {
	var in dto.CrearOrdenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	orden, err := h.uc.CrearOrden(c.Context(), in)
	if err != nil {
		return errorCompras(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(orden)
}

// GetOrden obtiene la orden con sus contadores de ciclo.
// GET /api/ordenes/:id
func (h *ComprasHandler) GetOrden(c *fiber.Ctx) error {
	orden, err := h.uc.GetOrden(c.Context(), c.Params("id"))
	if err != nil {
		return errorCompras(c, err)
	}
	return c.JSON(orden)
}

// AprobarOrden pasa la orden a aprobada.
// POST /api/ordenes/:id/aprobar
func (h *ComprasHandler) AprobarOrden(c *fiber.Ctx) error {
	orden, err := h.uc.AprobarOrden(c.Context(), c.Params("id"))
	if err != nil {
		return errorCompras(c, err)
	}
	return c.JSON(orden)
}

// RegistrarRecepcion aplica una entrada de almacén sobre la orden.
// POST /api/ordenes/:id/recepciones
func (h *ComprasHandler) RegistrarRecepcion(c *fiber.Ctx) error {
	var in dto.RegistrarRecepcionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.OrdenID = c.Params("id")
	orden, err := h.uc.RegistrarRecepcion(c.Context(), in)
	if err != nil {
		return errorCompras(c, err)
	}
	return c.JSON(orden)
}

// RegistrarFactura registra la factura del proveedor sobre la orden.
// POST /api/ordenes/:id/facturas
func (h *ComprasHandler) RegistrarFactura(c *fiber.Ctx) error {
	var in dto.RegistrarFacturaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.OrdenID = c.Params("id")
	factura, err := h.uc.RegistrarFactura(c.Context(), in)
	if err != nil {
		return errorCompras(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(factura)
}

// RegistrarDevolucion devuelve mercancía facturada al proveedor.
// POST /api/facturas/:id/devoluciones
func (h *ComprasHandler) RegistrarDevolucion(c *fiber.Ctx) error {
	var in dto.RegistrarDevolucionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.FacturaID = c.Params("id")
	devolucion, err := h.uc.RegistrarDevolucion(c.Context(), in)
	if err != nil {
		return errorCompras(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(devolucion)
}

// errorCompras traduce errores de dominio del ciclo de compras a HTTP.
func errorCompras(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrCantidadExcedida):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CANTIDAD_EXCEDIDA", Message: err.Error()})
	case errors.Is(err, domain.ErrFacturaDuplicada):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "FACTURA_DUPLICADA", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
