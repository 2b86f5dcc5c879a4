package http

import (
	"fmt"
	"net/http"

	"laundry/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// pathUUID binds a simple-style path parameter holding a UUID.
func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid format for parameter %s: %s", name, err))
	}
	return kernel.UUIDFromString(raw)
}

// queryParam binds a required form-style query parameter into dest.
func queryParam(c echo.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, true, name, c.QueryParams(), dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid format for parameter %s: %s", name, err))
	}
	return nil
}

// optionalQueryParam binds an optional form-style query parameter.
// It returns nil when the parameter is absent.
func optionalQueryParam[T any](c echo.Context, name string) (*T, error) {
	var value *T
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}

func deref[T any](value *T) T {
	if value == nil {
		var zero T
		return zero
	}
	return *value
}
