package services

import (
	"fmt"
	"reflect"
	"strings"

	"pos-kemasan/apperr"

	"github.com/go-playground/validator"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names so messages match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the struct tags and returns the first failure as a
// validation error.
func validateStruct(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return apperr.Validation("", err.Error())
	}
	fe := verrs[0]
	field := fieldPath(fe.Namespace())
	return apperr.Validation(field, describe(field, fe.Tag(), fe.Param()))
}

// fieldPath drops the root struct name: "CreateOrderInput.items[0].quantity"
// becomes "items[0].quantity".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s wajib diisi.", field)
	case "min":
		return fmt.Sprintf("%s minimal %s.", field, param)
	case "gt":
		return fmt.Sprintf("%s harus lebih besar dari %s.", field, param)
	case "gte":
		return fmt.Sprintf("%s minimal %s.", field, param)
	case "email":
		return fmt.Sprintf("%s bukan email yang valid.", field)
	case "oneof":
		return fmt.Sprintf("%s harus salah satu dari: %s.", field, param)
	}
	return fmt.Sprintf("%s tidak valid.", field)
}
