package repository

import "github.com/tu-usuario/compras-pro/internal/domain/entity"

// PeriodoContableRepository puerto de lectura de periodos contables.
// El cierre de periodo es un proceso externo; este núcleo solo consulta.
type PeriodoContableRepository interface {
	// GetByAnoMes devuelve el periodo del mes o nil si no existe.
	GetByAnoMes(ano, mes int) (*entity.PeriodoContable, error)
	Listar() ([]entity.PeriodoContable, error)
}
