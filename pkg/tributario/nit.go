package tributario

import "fmt"

// pesos para el cálculo del dígito de verificación del NIT (Orden Administrativa
// 4 de 1989, DIAN), aplicados de derecha a izquierda sobre los dígitos base.
var nitPesos = []int{3, 7, 13, 17, 19, 23, 29, 37, 41, 43, 47, 53, 59, 67, 71}

// DigitoVerificacionNIT calcula el dígito de verificación (módulo 11) para la
// parte base del NIT (sin el DV). Acepta puntos y guiones.
func DigitoVerificacionNIT(nit string) (byte, error) {
	digits := soloDigitos(nit)
	if len(digits) == 0 || len(digits) > len(nitPesos) {
		return 0, fmt.Errorf("tributario: NIT inválido para calcular dígito de verificación: %q", nit)
	}
	var suma int
	for i := 0; i < len(digits); i++ {
		d := int(digits[len(digits)-1-i] - '0')
		suma += d * nitPesos[i]
	}
	resto := suma % 11
	if resto == 0 || resto == 1 {
		return byte('0' + resto), nil
	}
	return byte('0' + (11 - resto)), nil
}

// ValidarNIT verifica que el NIT completo (base + dígito de verificación al
// final) tenga DV correcto. nit puede venir como "900123456-7", "900.123.456-7"
// o "9001234567".
func ValidarNIT(nit string) error {
	digits := soloDigitos(nit)
	if len(digits) < 2 {
		return fmt.Errorf("tributario: NIT demasiado corto: %q", nit)
	}
	base, dv := digits[:len(digits)-1], digits[len(digits)-1]
	esperado, err := DigitoVerificacionNIT(base)
	if err != nil {
		return err
	}
	if dv != esperado {
		return fmt.Errorf("tributario: dígito de verificación del NIT inválido: esperado %c, recibido %c", esperado, dv)
	}
	return nil
}

func soloDigitos(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b = append(b, s[i])
		}
	}
	return string(b)
}
