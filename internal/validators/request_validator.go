package validators

import (
	"regexp"

	"omnicasa-gateway/internal/models"

	"github.com/go-playground/validator/v10"
)

var endpointPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

type requestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() RequestValidator {
	v := validator.New()
	// registration only fails for an empty tag or nil func
	_ = v.RegisterValidation("omnicasa_endpoint", func(fl validator.FieldLevel) bool {
		return endpointPattern.MatchString(fl.Field().String())
	})
	return &requestValidator{validate: v}
}

func (v *requestValidator) ValidateEndpoint(req *models.EndpointRequest) error {
	return v.validate.Struct(req)
}

func (v *requestValidator) ValidateCacheKey(req *models.CacheKeyRequest) error {
	return v.validate.Struct(req)
}
