package middleware

import (
	"skill-directory/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const CtxCallerKey = "caller"

type AuthMiddleware struct {
	auth usecase.AuthUsecase
}

func NewAuthMiddleware(auth usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Middleware rejects the request with 401 unless the Authorization header
// resolves to an existing user. Lookup failures surface as 500. The caller is stored under CtxCallerKey.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		caller, err := m.auth.IdentifyCaller(c.Context(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return FromDomain(err)
		}

		c.Locals(CtxCallerKey, caller)
		return c.Next()
	}
}

// CallerFrom returns the caller stored by AuthMiddleware.
func CallerFrom(c fiber.Ctx) (usecase.Caller, bool) {
	caller, ok := c.Locals(CtxCallerKey).(usecase.Caller)
	return caller, ok
}
