package candidate

import (
	"fmt"

	"github.com/tbxark/talentscout/patch"
)

var allowedPaths = patch.FieldPointers[*Record]()

// Merge overlays the gated values of s onto a copy of r. The last snapshot
// wins per field; lists are replaced wholesale, never unioned. r is not
// modified.
func Merge(r *Record, s *Snapshot) (*Record, error) {
	current := r.Clone()
	ops, err := patch.Diff(current, accepted(s))
	if err != nil {
		return current, fmt.Errorf("diff snapshot: %w", err)
	}
	if len(ops) == 0 {
		return current, nil
	}
	merged, err := patch.Apply(current, ops, allowedPaths)
	if err != nil {
		return r.Clone(), fmt.Errorf("apply snapshot: %w", err)
	}
	return merged, nil
}

// ChangedFields lists, in collection order, the fields whose value differs
// between before and after.
func ChangedFields(before, after *Record) []Field {
	var changed []Field
	for _, field := range FieldOrder {
		if fieldValue(before, field) != fieldValue(after, field) {
			changed = append(changed, field)
		}
	}
	return changed
}

func fieldValue(r *Record, field Field) string {
	if r == nil {
		return ""
	}
	switch field {
	case FieldFullName:
		return r.FullName
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	case FieldYearsExperience:
		return r.FormatYears()
	case FieldDesiredPositions:
		return fmt.Sprint(r.DesiredPositions)
	case FieldLocation:
		return r.Location
	case FieldTechStack:
		return fmt.Sprint(r.TechStack)
	default:
		return ""
	}
}
