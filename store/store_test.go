package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbxark/talentscout/candidate"
)

func years(v float64) *float64 { return &v }

func sampleRecord() *candidate.Record {
	return &candidate.Record{
		FullName:         "Ana Li",
		Email:            "Ana@Example.com",
		Phone:            "+1 555 010 9999",
		YearsExperience:  years(4.5),
		DesiredPositions: []string{"Backend Engineer", "SRE"},
		Location:         "Lisbon, Portugal",
		TechStack:        []string{"Go", "Postgres"},
	}
}

func TestDigestHasher(t *testing.T) {
	h := DigestHasher{}
	assert.Equal(t, "", h.HashPII(""))

	hashed := h.HashPII("Ana@Example.com")
	assert.True(t, strings.HasPrefix(hashed, "hash:"))
	assert.True(t, strings.HasSuffix(hashed, "…"))
	assert.Len(t, strings.TrimSuffix(strings.TrimPrefix(hashed, "hash:"), "…"), 12)
	assert.Equal(t, hashed, h.HashPII("  ana@example.com "))
	assert.NotEqual(t, hashed, h.HashPII("bob@example.com"))
}

func TestRowFromRecord(t *testing.T) {
	row, err := RowFromRecord(sampleRecord(), PlainHasher{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Ana Li", "Ana@Example.com", "+1 555 010 9999", "4.5",
		"Backend Engineer, SRE", "Lisbon, Portugal", "Go, Postgres",
	}, row.Columns())

	row, err = RowFromRecord(sampleRecord(), DigestHasher{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(row.Email, "hash:"))
	assert.True(t, strings.HasPrefix(row.Phone, "hash:"))
	assert.Equal(t, "Ana Li", row.FullName)

	_, err = RowFromRecord(&candidate.Record{Email: "a@b.co"}, nil)
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = RowFromRecord(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestCSVStoreAppendReadTruncate(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "candidates.csv")
	s := NewCSVStore(path)
	assert.Equal(t, path, s.Path())

	rows, err := s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
	ok, err := s.TruncateLast(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	first, err := RowFromRecord(sampleRecord(), PlainHasher{})
	require.NoError(t, err)
	second := first
	second.FullName = "Bo Chen"
	second.YearsExperience = ""
	require.NoError(t, s.Append(ctx, first))
	require.NoError(t, s.Append(ctx, second))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "full_name,email,phone,years_experience,desired_positions,location,tech_stack", lines[0])

	rows, err = s.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, first, rows[0])
	assert.Equal(t, second, rows[1])

	ok, err = s.TruncateLast(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	rows, err = s.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana Li", rows[0].FullName)

	ok, err = s.TruncateLast(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	rows, err = s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCSVStoreEmptyFileGetsHeader(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "candidates.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	s := NewCSVStore(path)

	require.NoError(t, s.Append(ctx, Row{FullName: "Ana Li"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), strings.Join(Header, ",")+"\n"))
	rows, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana Li", rows[0].FullName)

	ok, err := s.TruncateLast(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	rows, err = s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
