package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/compras-pro/internal/application/dto"
	"github.com/tu-usuario/compras-pro/internal/application/maestros"
	"github.com/tu-usuario/compras-pro/internal/domain"
)

// ProveedorHandler administra el maestro de proveedores.
type ProveedorHandler struct {
	uc *maestros.ProveedorUseCase
}

func NewProveedorHandler(uc *maestros.ProveedorUseCase) *ProveedorHandler {
	return &ProveedorHandler{uc: uc}
}

// Crear registra un proveedor con su perfil tributario.
// POST /api/proveedores
func (h *ProveedorHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearProveedorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	proveedor, err := h.uc.Crear(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NIT_DUPLICADO", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(proveedor)
}

// GetByID obtiene un proveedor.
// GET /api/proveedores/:id
func (h *ProveedorHandler) GetByID(c *fiber.Ctx) error {
	proveedor, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proveedor no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(proveedor)
}

// Listar devuelve todos los proveedores.
// GET /api/proveedores
func (h *ProveedorHandler) Listar(c *fiber.Ctx) error {
	proveedores, err := h.uc.Listar(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(proveedores)
}

// CatalogosHandler expone los catálogos contables de solo lectura.
type CatalogosHandler struct {
	uc *maestros.CatalogosUseCase
}

func NewCatalogosHandler(uc *maestros.CatalogosUseCase) *CatalogosHandler {
	return &CatalogosHandler{uc: uc}
}

// ListarConceptos lista los conceptos de retención activos.
// GET /api/conceptos
func (h *CatalogosHandler) ListarConceptos(c *fiber.Ctx) error {
	conceptos, err := h.uc.ListarConceptos(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(conceptos)
}

// ListarCuentas lista el plan de cuentas.
// GET /api/cuentas
func (h *CatalogosHandler) ListarCuentas(c *fiber.Ctx) error {
	cuentas, err := h.uc.ListarCuentas(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(cuentas)
}

// ListarPeriodos lista los periodos contables.
// GET /api/periodos
func (h *CatalogosHandler) ListarPeriodos(c *fiber.Ctx) error {
	periodos, err := h.uc.ListarPeriodos(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(periodos)
}
