package contabilidad_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/compras-pro/internal/domain/contabilidad"
)

func TestCalcularLinea_FormulaCompleta(t *testing.T) {
	// 10 unidades × 100.000, descuento 10%, IVA 19%:
	// subtotal 1.000.000, descuento 100.000, base 900.000, IVA 171.000, total 1.071.000
	v := contabilidad.CalcularLinea(
		decimal.NewFromInt(10),
		decimal.NewFromInt(100_000),
		decimal.NewFromInt(10),
		decimal.NewFromInt(19),
	)

	assert.True(t, decimal.NewFromInt(1_000_000).Equal(v.Subtotal))
	assert.True(t, decimal.NewFromInt(100_000).Equal(v.Descuento))
	assert.True(t, decimal.NewFromInt(900_000).Equal(v.BaseGravable))
	assert.True(t, decimal.NewFromInt(171_000).Equal(v.IVA))
	assert.True(t, decimal.NewFromInt(1_071_000).Equal(v.Total))
}

func TestCalcularLinea_SinDescuentoNiIVA(t *testing.T) {
	v := contabilidad.CalcularLinea(
		decimal.NewFromInt(3),
		decimal.NewFromInt(50_000),
		decimal.Zero,
		decimal.Zero,
	)
	assert.True(t, decimal.NewFromInt(150_000).Equal(v.Subtotal))
	assert.True(t, v.Descuento.IsZero())
	assert.True(t, v.IVA.IsZero())
	assert.True(t, v.Subtotal.Equal(v.Total), "sin descuento ni IVA, total == subtotal")
}

func TestCalcularLinea_Acumular(t *testing.T) {
	a := contabilidad.CalcularLinea(decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(19))
	b := contabilidad.CalcularLinea(decimal.NewFromInt(2), decimal.NewFromInt(200), decimal.Zero, decimal.NewFromInt(19))

	tot := a.Acumular(b)
	assert.True(t, decimal.NewFromInt(500).Equal(tot.Subtotal))
	assert.True(t, tot.Total.Equal(a.Total.Add(b.Total)))
}
