package http

import (
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"
	"gopkg.in/go-playground/validator.v9"
)

var clockTime = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$|^24:00$`)

// CustomValidator validates bound request bodies against their struct tags.
type CustomValidator struct {
	Validator *validator.Validate
}

// NewCustomValidator registers the hh_mm tag for clock times such as 09:30.
func NewCustomValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("hh_mm", func(fl validator.FieldLevel) bool {
		return clockTime.MatchString(fl.Field().String())
	})
	return &CustomValidator{Validator: v}
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.Validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// bindAndValidate decodes the body into req and checks its tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.Validate(req)
}
