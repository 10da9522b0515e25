// Package candidate holds the candidate record collected during an intake
// conversation, the order in which its fields are asked for and the rules for
// merging freshly extracted snapshots into it.
package candidate

import (
	"strconv"
	"strings"
)

type Field string

const (
	FieldFullName         Field = "full_name"
	FieldEmail            Field = "email"
	FieldPhone            Field = "phone"
	FieldYearsExperience  Field = "years_experience"
	FieldDesiredPositions Field = "desired_positions"
	FieldLocation         Field = "location"
	FieldTechStack        Field = "tech_stack"
)

// FieldOrder is the mandatory collection order.
var FieldOrder = []Field{
	FieldFullName,
	FieldEmail,
	FieldPhone,
	FieldYearsExperience,
	FieldDesiredPositions,
	FieldLocation,
	FieldTechStack,
}

func (f Field) Pointer() string {
	return "/" + string(f)
}

func (f Field) DisplayName() string {
	switch f {
	case FieldFullName:
		return "Full name"
	case FieldEmail:
		return "Email"
	case FieldPhone:
		return "Phone"
	case FieldYearsExperience:
		return "Years of experience"
	case FieldDesiredPositions:
		return "Desired positions"
	case FieldLocation:
		return "Location"
	case FieldTechStack:
		return "Tech stack"
	default:
		return string(f)
	}
}

// Record is the candidate data collected across the conversation.
type Record struct {
	FullName         string   `json:"full_name" jsonschema:"description=Candidate full name"`
	Email            string   `json:"email" jsonschema:"description=Email address (local@domain.tld)"`
	Phone            string   `json:"phone" jsonschema:"description=Phone number, country code if possible"`
	YearsExperience  *float64 `json:"years_experience" jsonschema:"description=Years of professional experience,minimum=0"`
	DesiredPositions []string `json:"desired_positions" jsonschema:"description=Position(s) the candidate is aiming for"`
	Location         string   `json:"location" jsonschema:"description=Current city and country"`
	TechStack        []string `json:"tech_stack" jsonschema:"description=Languages, frameworks, databases and tools"`
}

// Has reports whether field satisfies its presence rule.
func (r *Record) Has(field Field) bool {
	if r == nil {
		return false
	}
	switch field {
	case FieldFullName:
		return strings.TrimSpace(r.FullName) != ""
	case FieldEmail:
		return strings.TrimSpace(r.Email) != ""
	case FieldPhone:
		return strings.TrimSpace(r.Phone) != ""
	case FieldYearsExperience:
		return r.YearsExperience != nil
	case FieldDesiredPositions:
		return len(nonEmpty(r.DesiredPositions)) > 0
	case FieldLocation:
		return strings.TrimSpace(r.Location) != ""
	case FieldTechStack:
		return len(nonEmpty(r.TechStack)) > 0
	default:
		return false
	}
}

// NextMissingField returns the first field in FieldOrder that is absent.
// ok is false when the record is complete.
func NextMissingField(r *Record) (Field, bool) {
	for _, field := range FieldOrder {
		if !r.Has(field) {
			return field, true
		}
	}
	return "", false
}

// Complete reports whether every field is present.
func (r *Record) Complete() bool {
	_, missing := NextMissingField(r)
	return !missing
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	if r == nil {
		return &Record{}
	}
	out := *r
	if r.YearsExperience != nil {
		years := *r.YearsExperience
		out.YearsExperience = &years
	}
	out.DesiredPositions = append([]string(nil), r.DesiredPositions...)
	out.TechStack = append([]string(nil), r.TechStack...)
	return &out
}

// FormatYears renders years without trailing zeros; absent years render empty.
func (r *Record) FormatYears() string {
	if r == nil || r.YearsExperience == nil {
		return ""
	}
	return strconv.FormatFloat(*r.YearsExperience, 'f', -1, 64)
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
