package candidate

import (
	"strings"
)

// Snapshot is a one-shot, fully optional extraction of the record from the
// whole transcript. It is discarded right after merging.
type Snapshot struct {
	FullName         *string  `json:"full_name,omitempty" jsonschema:"description=Full name or null if unknown"`
	Email            *string  `json:"email,omitempty" jsonschema:"description=Email address or null if unknown"`
	Phone            *string  `json:"phone,omitempty" jsonschema:"description=Phone number or null if unknown"`
	YearsExperience  any      `json:"years_experience,omitempty" jsonschema:"description=Years of professional experience as a number or null if unknown"`
	DesiredPositions []string `json:"desired_positions,omitempty" jsonschema:"description=Desired positions or an empty array"`
	Location         *string  `json:"location,omitempty" jsonschema:"description=City and country or null if unknown"`
	TechStack        []string `json:"tech_stack,omitempty" jsonschema:"description=Technologies or an empty array"`
}

// Empty reports whether the snapshot carries no information at all.
func (s *Snapshot) Empty() bool {
	return s == nil || len(accepted(s)) == 0
}

// accepted returns the snapshot values that pass their field gate, keyed by
// JSON field name. Values failing a gate are left out, so they can never
// overwrite what the record already holds.
func accepted(s *Snapshot) map[string]any {
	out := map[string]any{}
	if s == nil {
		return out
	}
	if v := trimmed(s.FullName); v != "" {
		out[string(FieldFullName)] = v
	}
	if v := trimmed(s.Email); v != "" && ValidEmail(v) {
		out[string(FieldEmail)] = v
	}
	if v := trimmed(s.Phone); v != "" && ValidPhone(v) {
		out[string(FieldPhone)] = v
	}
	if years, ok := CoerceYears(s.YearsExperience); ok {
		out[string(FieldYearsExperience)] = years
	}
	if items := nonEmpty(s.DesiredPositions); len(items) > 0 {
		out[string(FieldDesiredPositions)] = items
	}
	if v := trimmed(s.Location); v != "" {
		out[string(FieldLocation)] = v
	}
	if items := nonEmpty(s.TechStack); len(items) > 0 {
		out[string(FieldTechStack)] = items
	}
	return out
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
