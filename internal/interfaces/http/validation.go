package http

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// nomes de campo iguais aos do JSON/query nas mensagens
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "query"} {
				name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
	return validate
}

// parseBody decodifica o corpo JSON e valida as tags.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return badRequest("INVALID_BODY", "corpo inválido: "+err.Error(), nil)
	}
	return checkStruct(out)
}

// parseQuery decodifica a query string e valida as tags.
func parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return badRequest("INVALID_QUERY", "parâmetros inválidos: "+err.Error(), nil)
	}
	return checkStruct(out)
}

func checkStruct(out any) error {
	err := validatorInstance().Struct(out)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return badRequest("VALIDATION", err.Error(), nil)
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fieldPath(fe)] = ruleMessage(fe)
	}
	return badRequest("VALIDATION", "dados inválidos", details)
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "obrigatório"
	case "min":
		return "mínimo " + fe.Param()
	case "max":
		return "máximo " + fe.Param()
	case "len":
		return "tamanho deve ser " + fe.Param()
	case "oneof":
		return "valores aceitos: " + fe.Param()
	case "email":
		return "email inválido"
	case "alpha":
		return "somente letras"
	}
	return "inválido (" + fe.Tag() + ")"
}
