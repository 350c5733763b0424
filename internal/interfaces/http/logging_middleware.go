package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/compras-pro/pkg/logger"
)

// RequestLogger registra cada petición con método, ruta, estado y duración.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inicio := time.Now()
		err := c.Next()

		estado := c.Response().StatusCode()
		evento := log.Info()
		if err != nil || estado >= fiber.StatusInternalServerError {
			evento = log.Error().Err(err)
		}
		evento.
			Str("metodo", c.Method()).
			Str("ruta", c.Path()).
			Int("estado", estado).
			Dur("duracion", time.Since(inicio)).
			Msg("petición HTTP")
		return err
	}
}
