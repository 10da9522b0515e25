// Package store persists finished candidate records as rows of a table.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/tbxark/talentscout/candidate"
)

var ErrEmptyName = errors.New("candidate has no full name")

// Header lists the table columns in order.
var Header = []string{
	"full_name",
	"email",
	"phone",
	"years_experience",
	"desired_positions",
	"location",
	"tech_stack",
}

type Row struct {
	FullName         string
	Email            string
	Phone            string
	YearsExperience  string
	DesiredPositions string
	Location         string
	TechStack        string
}

func (r Row) Columns() []string {
	return []string{r.FullName, r.Email, r.Phone, r.YearsExperience, r.DesiredPositions, r.Location, r.TechStack}
}

func rowFromColumns(cols []string) Row {
	padded := make([]string, len(Header))
	copy(padded, cols)
	return Row{
		FullName:         padded[0],
		Email:            padded[1],
		Phone:            padded[2],
		YearsExperience:  padded[3],
		DesiredPositions: padded[4],
		Location:         padded[5],
		TechStack:        padded[6],
	}
}

type Store interface {
	Append(ctx context.Context, row Row) error
	ReadAll(ctx context.Context) ([]Row, error)
	// TruncateLast drops the newest row and reports whether one existed.
	TruncateLast(ctx context.Context) (bool, error)
	Path() string
}

type Hasher interface {
	HashPII(value string) string
}

// DigestHasher replaces a value with a short tagged SHA-256 digest of its
// trimmed lower-case form, so hashed cells are told apart from raw ones.
type DigestHasher struct{}

func (DigestHasher) HashPII(value string) string {
	if value == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(value))))
	return "hash:" + hex.EncodeToString(sum[:])[:12] + "…"
}

type PlainHasher struct{}

func (PlainHasher) HashPII(value string) string {
	return value
}

// RowFromRecord flattens r; email and phone go through hasher.
func RowFromRecord(r *candidate.Record, hasher Hasher) (Row, error) {
	if r == nil || strings.TrimSpace(r.FullName) == "" {
		return Row{}, ErrEmptyName
	}
	if hasher == nil {
		hasher = PlainHasher{}
	}
	return Row{
		FullName:         r.FullName,
		Email:            hasher.HashPII(r.Email),
		Phone:            hasher.HashPII(r.Phone),
		YearsExperience:  r.FormatYears(),
		DesiredPositions: strings.Join(r.DesiredPositions, ", "),
		Location:         r.Location,
		TechStack:        strings.Join(r.TechStack, ", "),
	}, nil
}
