package validators

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/AanchalGupta0502/SocialeX/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapts validator/v10 to echo.Validator and to the WebSocket
// payload binder. A single instance is shared; it caches struct metadata.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate is called by echo.Context.Validate and answers 400 on failure.
func (v *Validator) Validate(i interface{}) error {
	if err := v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Struct validates i and wraps failures in common.ErrorValidation with a
// readable field list.
func (v *Validator) Struct(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", common.ErrorValidation, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %v", common.ErrorValidation, err)
}
