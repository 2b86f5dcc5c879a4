package http

import (
	"net/http"
	"strings"

	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	HeaderActorID        = "X-Actor-Id"
	HeaderActorRole      = "X-Actor-Role"
	HeaderIdempotencyKey = "Idempotency-Key"

	actorKey          = "actor"
	idempotencyKeyKey = "idempotency_key"
)

// ActorMiddleware turns the identity headers set by the gateway into a
// kernel.Actor stored on the request context. Requests without a valid
// identity are answered with 401.
func ActorMiddleware(skipper middleware.Skipper) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}

			id, err := kernel.UUIDFromString(c.Request().Header.Get(HeaderActorID))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid "+HeaderActorID)
			}
			role, err := kernel.RoleFromString(strings.ToUpper(c.Request().Header.Get(HeaderActorRole)))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid "+HeaderActorRole)
			}
			actor, err := kernel.NewActor(id, role)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// IdempotencyMiddleware reads the Idempotency-Key header of mutating
// requests and generates one when it is absent.
func IdempotencyMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey))
			if key == "" && c.Request().Method != http.MethodGet {
				key = uuid.NewString()
			}
			c.Set(idempotencyKeyKey, key)
			if key != "" {
				c.Response().Header().Set(HeaderIdempotencyKey, key)
			}
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) (kernel.Actor, error) {
	actor, ok := c.Get(actorKey).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "request carries no actor")
	}
	return actor, nil
}

func idempotencyKey(c echo.Context) string {
	key, _ := c.Get(idempotencyKeyKey).(string)
	return key
}
