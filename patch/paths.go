package patch

import (
	"fmt"
	"reflect"
	"strings"
)

// FieldPointers returns the JSON pointer of every exported top-level field
// of struct T. Nested members are reached through their top-level pointer.
func FieldPointers[T any]() map[string]bool {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	out := map[string]bool{}
	if typ.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = field.Name
		}
		out["/"+pointerEscaper.Replace(name)] = true
	}
	return out
}

// CheckPointers fails on the first operation whose top-level member is not
// in allowed. An empty allowed set accepts everything.
func CheckPointers(ops []Operation, allowed map[string]bool) error {
	if len(allowed) == 0 {
		return nil
	}
	for i, op := range ops {
		if !allowed["/"+pointerEscaper.Replace(op.Field())] {
			return fmt.Errorf("operation %d on %q: %w", i, op.Path, ErrPathNotAllowed)
		}
	}
	return nil
}
