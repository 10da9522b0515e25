package structured

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// SchemaError lists every field of an oracle answer that broke the output schema.
type SchemaError struct {
	Errors []FieldError
}

type FieldError struct {
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString("schema validation failed:")
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("\n  %d. %s: %s", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateJSONString validates a JSON document against a compiled schema.
// A document that is not JSON at all is reported as a plain error.
func ValidateJSONString(schema *gojsonschema.Schema, document string) error {
	result, err := schema.Validate(gojsonschema.NewStringLoader(document))
	if err != nil {
		return fmt.Errorf("load JSON document failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Errors = append(schemaErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return schemaErr
}
