package repository

import "github.com/tu-usuario/compras-pro/internal/domain/entity"

// ConceptoRetencionRepository define el puerto de solo lectura del catálogo de
// conceptos de retención. El motor recibe la lista ya leída; el repositorio lo
// usan los casos de uso, nunca el motor.
type ConceptoRetencionRepository interface {
	// ListarActivos devuelve todos los conceptos activos del catálogo.
	ListarActivos() ([]entity.ConceptoRetencion, error)
	GetByCodigo(codigo string) (*entity.ConceptoRetencion, error)
}
