package candidate

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/eino-contrib/jsonschema"
	"github.com/tbxark/talentscout/types"
)

// Spec describes the candidate form to the conversation driver.
type Spec struct{}

func (Spec) JsonSchema() (string, error) {
	schema := jsonschema.Reflect(&Record{})
	schema.Title = "Candidate"
	schema.Description = "Screening record of a job candidate: contact details, experience, desired positions, location and tech stack."
	schemaJSON, err := sonic.MarshalString(schema)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON schema: %w", err)
	}
	return schemaJSON, nil
}

// MissingFacts lists absent fields in collection order.
func (Spec) MissingFacts(current *Record) []types.FieldInfo {
	var missing []types.FieldInfo
	for _, field := range FieldOrder {
		if current.Has(field) {
			continue
		}
		missing = append(missing, types.FieldInfo{
			JSONPointer: field.Pointer(),
			DisplayName: field.DisplayName(),
			Required:    true,
		})
	}
	return missing
}

func (Spec) ValidateFacts(current *Record) []types.FieldInfo {
	var errs []types.FieldInfo
	if current == nil {
		return errs
	}
	if current.Email != "" && !ValidEmail(current.Email) {
		errs = append(errs, types.FieldInfo{
			JSONPointer: FieldEmail.Pointer(),
			DisplayName: FieldEmail.DisplayName(),
			Description: "email must look like local@domain.tld",
		})
	}
	if current.Phone != "" && !ValidPhone(current.Phone) {
		errs = append(errs, types.FieldInfo{
			JSONPointer: FieldPhone.Pointer(),
			DisplayName: FieldPhone.DisplayName(),
			Description: "phone must have at least 7 digits or separators",
		})
	}
	if current.YearsExperience != nil && *current.YearsExperience < 0 {
		errs = append(errs, types.FieldInfo{
			JSONPointer: FieldYearsExperience.Pointer(),
			DisplayName: FieldYearsExperience.DisplayName(),
			Description: "years of experience cannot be negative",
		})
	}
	return errs
}

func (Spec) Summary(current *Record) string {
	if current == nil {
		current = &Record{}
	}
	return fmt.Sprintf("Candidate summary:\nName: %s\nEmail: %s\nPhone: %s\nExperience: %s years\nPositions: %s\nLocation: %s\nTech stack: %s",
		current.FullName,
		current.Email,
		current.Phone,
		current.FormatYears(),
		strings.Join(current.DesiredPositions, ", "),
		current.Location,
		strings.Join(current.TechStack, ", "),
	)
}
