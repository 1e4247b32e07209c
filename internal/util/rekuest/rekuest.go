package rekuest

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"daylog.dev/backend/internal/pkg/dlerr"
	"daylog.dev/backend/internal/util"
)

var Validate = util.NewValidator()

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

func describe(ve validator.ValidationErrors) []*ErrorResponse {
	resp := make([]*ErrorResponse, 0, len(ve))
	for _, fe := range ve {
		resp = append(resp, &ErrorResponse{
			Field:     fe.Namespace(),
			Violation: fe.Tag(),
			Message:   fe.Error(),
		})
	}
	return resp
}

// ValidStruct validates dest using the validator singleton, translating violations
// into a structured invalid-request error.
func ValidStruct(ctx *fiber.Ctx, dest any) error {
	if err := Validate.Struct(dest); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			panic(err)
		}
		return dlerr.NewInvalidViolations(describe(errs))
	}

	return nil
}

// ValidBody parses the request body into dest and validates it.
func ValidBody(ctx *fiber.Ctx, dest any) error {
	if err := ctx.BodyParser(dest); err != nil {
		return dlerr.ErrInvalidReq.Msg("invalid request: malformed body")
	}
	return ValidStruct(ctx, dest)
}

// ValidVar validates a single value against a validation tag.
func ValidVar(ctx *fiber.Ctx, field any, tag string) error {
	if err := Validate.Var(field, tag); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			panic(err)
		}
		return dlerr.NewInvalidViolations(describe(errs))
	}

	return nil
}
