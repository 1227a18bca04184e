package req

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"gift_ledger/pkg/errcodes"
	"gift_ledger/pkg/httpx/reply"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	validate = newValidator()                               //nolint:gochecknoglobals // skip
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(JSONFieldName)

	return v
}

// JSONFieldName называет поля по json-имени, как в теле запроса.
func JSONFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}

// Decode читает JSON из тела без валидации.
func Decode(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return failure.NewInvalidArgumentError(
			fmt.Errorf("json.Decode: %w", err).Error(),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("Invalid JSON"),
		)
	}

	return nil
}

func Read(r *http.Request, dest any) error {
	if err := Decode(r, dest); err != nil {
		return err
	}

	if err := validate.StructCtx(r.Context(), dest); err != nil {
		violations := describe(err)

		return reply.WithViolations(
			failure.NewInvalidArgumentError(
				"validation error",
				failure.WithCode(errcodes.ValidationError),
				failure.WithDescription(strings.Join(violations, "; ")),
			),
			violations,
		)
	}

	return nil
}

func describe(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))

	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fe.Field()+" is required")
		default:
			messages = append(messages, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
	}

	return messages
}
