package runner

import (
	"errors"
	"fmt"
	"os"
	"reflect"
)

// ExpandTemplates rewrites, in place, every template field reachable from in: a struct or a
// slice of structs. String, *string and []string fields take part only when tagged
// `template` (a `template:"-"` tag opts out); map[string]string values are always expanded.
// Structs, *struct, []struct and []*struct are explored whether tagged or not, and
// unexported fields are ignored.
//
// Every unknown variable is reported, not only the first one.
func ExpandTemplates[T any](in *T, variables map[string]string) error {
	if in == nil {
		return nil
	}

	e := &expander{variables: variables}
	v := reflect.ValueOf(in).Elem()
	switch v.Kind() {
	case reflect.Struct:
		e.structFields(v)
	case reflect.Slice:
		e.slice(v, true)
	default:
		return fmt.Errorf("ExpandTemplates expects *struct or *[]struct; got *%s", v.Type())
	}

	return e.errs
}

// Expand replaces ${VAR} references in value using variables.
// Returns an error naming each referenced variable that is not in variables.
func Expand(value string, variables map[string]string) (string, error) {
	e := &expander{variables: variables}
	result := e.expand(value)
	if e.errs != nil {
		return "", e.errs
	}
	return result, nil
}

type expander struct {
	variables map[string]string
	errs      error
}

func (e *expander) expand(value string) string {
	return os.Expand(value, func(key string) string {
		if val, ok := e.variables[key]; ok {
			return val
		}
		e.errs = errors.Join(e.errs, fmt.Errorf("variable %q is not in the allowed list", key))
		return ""
	})
}

func (e *expander) structFields(v reflect.Value) {
	typ := v.Type()
	for i := range typ.NumField() {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag, tagged := sf.Tag.Lookup("template")
		e.value(v.Field(i), tagged && tag != "-")
	}
}

// value expands a single field. Strings are only touched when template is set.
func (e *expander) value(field reflect.Value, template bool) {
	switch field.Kind() {
	case reflect.String:
		if template {
			field.SetString(e.expand(field.String()))
		}

	case reflect.Ptr:
		if field.IsNil() {
			return
		}
		elem := field.Elem()
		switch elem.Kind() {
		case reflect.String:
			if template {
				expanded := reflect.New(elem.Type())
				expanded.Elem().SetString(e.expand(elem.String()))
				field.Set(expanded)
			}
		case reflect.Struct:
			e.structFields(elem)
		}

	case reflect.Struct:
		e.structFields(field)

	case reflect.Slice:
		e.slice(field, template)

	case reflect.Map:
		typ := field.Type()
		if field.IsNil() || typ.Key().Kind() != reflect.String || typ.Elem().Kind() != reflect.String {
			return
		}
		expanded := reflect.MakeMapWithSize(typ, field.Len())
		iter := field.MapRange()
		for iter.Next() {
			expanded.SetMapIndex(iter.Key(), reflect.ValueOf(e.expand(iter.Value().String())).Convert(typ.Elem()))
		}
		field.Set(expanded)
	}
}

func (e *expander) slice(v reflect.Value, template bool) {
	if v.IsNil() {
		return
	}

	elemTyp := v.Type().Elem()
	switch {
	case elemTyp.Kind() == reflect.String:
		if !template {
			return
		}
		for i := range v.Len() {
			el := v.Index(i)
			el.SetString(e.expand(el.String()))
		}
	case elemTyp.Kind() == reflect.Struct:
		for i := range v.Len() {
			e.structFields(v.Index(i))
		}
	case elemTyp.Kind() == reflect.Ptr && elemTyp.Elem().Kind() == reflect.Struct:
		for i := range v.Len() {
			if el := v.Index(i); !el.IsNil() {
				e.structFields(el.Elem())
			}
		}
	}
}
