package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	helper "ievents_backend/internals/helpers"
)

// health check load balancer tidak perlu masuk access log
var quietPaths = map[string]struct{}{
	"/":       {},
	"/health": {},
}

// LoggerMiddleware: access log per request, user diisi kalau sudah lewat AuthMiddleware.
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		Next:       SkipAccessLog,
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Format:     "[${time}] ${ip} ${locals:reqid} user=${locals:" + helper.LocUserID + "} - ${method} ${path} - ${status} - ${latency}\n",
	})
}

func SkipAccessLog(c *fiber.Ctx) bool {
	_, quiet := quietPaths[c.Path()]
	return quiet && c.Method() == fiber.MethodGet
}
