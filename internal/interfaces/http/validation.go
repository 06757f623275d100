package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-ops-api/internal/domain"
)

// validate instancia única: validator cachea la metadata de cada struct.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Los mensajes usan el nombre JSON del campo, que es el que conoce el cliente.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// parseBody decodifica el JSON del request en out y valida sus tags.
// Un campo que el DTO no declara se rechaza en lugar de ignorarse.
// Cualquier falla es un domain.ValidationError con un motivo legible.
func parseBody(c *fiber.Ctx, out any) error {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
			return domain.Invalid("campo no admitido: %s", field)
		}
		return domain.Invalid("cuerpo JSON inválido")
	}
	if dec.More() {
		return domain.Invalid("cuerpo JSON inválido")
	}
	return validateStruct(out)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return domain.Invalid("%s", fieldMessage(verrs[0]))
	}
	return domain.Invalid("entrada inválida")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " es requerido"
	case "number":
		return field + " debe contener solo dígitos"
	case "uuid":
		return field + " debe ser un identificador válido"
	case "email":
		return field + " debe ser un email válido"
	case "min":
		if fe.Kind() == reflect.String {
			return field + " debe tener al menos " + fe.Param() + " caracteres"
		}
		return field + " debe tener al menos " + fe.Param() + " elemento(s)"
	case "max":
		if fe.Kind() == reflect.String {
			return field + " admite como máximo " + fe.Param() + " caracteres"
		}
		return field + " admite como máximo " + fe.Param()
	default:
		return field + " no es válido (" + fe.Tag() + ")"
	}
}
