package middleware

import (
	"strings"

	"pos-kemasan/apperr"
	"pos-kemasan/controllers/helpers"
	"pos-kemasan/logger"
	"pos-kemasan/services"

	"github.com/gofiber/fiber/v2"
)

type AuthMiddleware struct {
	Auth *services.AuthService
}

func NewAuthMiddleware(auth *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{Auth: auth}
}

// Authenticate requires a valid "Bearer <token>" header and stores the user
// id and role in Locals.
func (a *AuthMiddleware) Authenticate(ctx *fiber.Ctx) error {
	authHeader := ctx.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return helpers.Fail(ctx, apperr.Auth("Header Authorization tidak ada."))
	}

	tokenParts := strings.Fields(authHeader)
	if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "bearer") {
		return helpers.Fail(ctx, apperr.Auth("Format header Authorization tidak valid."))
	}

	claims, err := a.Auth.ParseToken(tokenParts[1])
	if err != nil {
		return helpers.Fail(ctx, err)
	}

	ctx.Locals(helpers.LocalUserID, claims.UserID)
	ctx.Locals(helpers.LocalRole, claims.Role)
	reqCtx := ctx.UserContext()
	ctx.SetUserContext(logger.Inject(reqCtx, logger.FromCtx(reqCtx).With("user_id", claims.UserID, "role", claims.Role)))
	return ctx.Next()
}

// RequirePermission rejects roles that do not hold p. It must run after
// Authenticate.
func (a *AuthMiddleware) RequirePermission(p Permission) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		actor := helpers.Actor(ctx)
		if actor.UserID == 0 {
			return helpers.Fail(ctx, apperr.Auth("Silakan login terlebih dahulu."))
		}
		if !Allowed(p, actor.Role) {
			logger.FromCtx(ctx.UserContext()).Warn("permission denied", "permission", p)
			return helpers.Fail(ctx, apperr.Forbidden("Anda tidak memiliki akses."))
		}
		return ctx.Next()
	}
}
