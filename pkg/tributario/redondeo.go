package tributario

import "github.com/shopspring/decimal"

// RedondearPeso redondea un monto al peso entero más cercano.
// El peso colombiano no maneja centavos en este dominio; los valores de
// retención y los renglones del asiento se expresan siempre en pesos enteros.
// Empates (x.5) se redondean alejándose de cero, que es el comportamiento
// de decimal.Round.
func RedondearPeso(monto decimal.Decimal) decimal.Decimal {
	return monto.Round(0)
}
