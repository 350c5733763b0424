package repository

import "github.com/tu-usuario/compras-pro/internal/domain/entity"

// TerceroRepository puerto del directorio de terceros (lectura y alta).
// El alta existe para la política de "crear tercero mínimo al vuelo" cuando el
// proveedor aún no está registrado como tercero contable.
type TerceroRepository interface {
	GetByID(id string) (*entity.Tercero, error)
	GetByDocumento(numeroDocumento string) (*entity.Tercero, error)
	Create(tercero *entity.Tercero) error
}
