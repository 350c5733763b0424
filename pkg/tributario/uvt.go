package tributario

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tabla de valores UVT (Unidad de Valor Tributario) por año gravable,
// según resolución anual de la DIAN. En pesos colombianos.
var uvtPorAno = map[int]decimal.Decimal{
	2022: decimal.NewFromInt(38004),
	2023: decimal.NewFromInt(42412),
	2024: decimal.NewFromInt(47065),
	2025: decimal.NewFromInt(49799),
}

// UVT devuelve el valor del UVT en pesos para un año gravable.
// Retorna error si el año no está en la tabla (debe sobreescribirse vía configuración).
func UVT(ano int) (decimal.Decimal, error) {
	v, ok := uvtPorAno[ano]
	if !ok {
		return decimal.Zero, fmt.Errorf("tributario: no hay valor UVT para el año %d", ano)
	}
	return v, nil
}

// UVTAPesos convierte un umbral expresado en UVT a pesos: umbral * valorUVT.
func UVTAPesos(umbralUVT, valorUVT decimal.Decimal) decimal.Decimal {
	return umbralUVT.Mul(valorUVT)
}
