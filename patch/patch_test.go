package patch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Name   string   `json:"name,omitempty"`
	Skills []string `json:"skills,omitempty"`
	Years  *float64 `json:"years,omitempty"`
	Path   string   `json:"a/b,omitempty"`
	Secret string   `json:"-"`
	hidden string
}

func TestFieldPointers(t *testing.T) {
	assert.Equal(t, map[string]bool{
		"/name":   true,
		"/skills": true,
		"/years":  true,
		"/a~1b":   true,
	}, FieldPointers[*profile]())
	assert.Empty(t, FieldPointers[string]())
}

func TestDiffOverlaysOnlySetKeys(t *testing.T) {
	current := &profile{Name: "Ana", Skills: []string{"Go"}}
	ops, err := Diff(current, map[string]any{
		"name":   "Ana",
		"skills": []string{"Go", "SQL"},
		"years":  3.0,
		"a/b":    nil,
	})
	require.NoError(t, err)
	assert.Equal(t, []Operation{
		{Op: OperationReplace, Path: "/skills", Value: []any{"Go", "SQL"}},
		{Op: OperationAdd, Path: "/years", Value: 3.0},
	}, ops)
}

func TestApply(t *testing.T) {
	current := &profile{Name: "Ana"}
	out, err := Apply(current, []Operation{
		{Op: OperationReplace, Path: "/skills", Value: []string{"Go"}},
		{Op: OperationRemove, Path: "/years"},
		{Op: OperationReplace, Path: "/name", Value: "Ana Li"},
	}, FieldPointers[*profile]())
	require.NoError(t, err)
	assert.Equal(t, "Ana Li", out.Name)
	assert.Equal(t, []string{"Go"}, out.Skills)
	assert.Nil(t, out.Years)
	assert.Equal(t, "Ana", current.Name)
}

func TestApplyRejectsUnknownMember(t *testing.T) {
	_, err := Apply(&profile{}, []Operation{
		{Op: OperationAdd, Path: "/salary", Value: 1},
	}, FieldPointers[*profile]())
	assert.True(t, errors.Is(err, ErrPathNotAllowed))
}

func TestApplyTypeMismatch(t *testing.T) {
	_, err := Apply(&profile{}, []Operation{
		{Op: OperationAdd, Path: "/years", Value: "many"},
	}, nil)
	assert.Error(t, err)
}

func TestOperationField(t *testing.T) {
	assert.Equal(t, "skills", Operation{Path: "/skills/0"}.Field())
	assert.Equal(t, "a/b", Operation{Path: "/a~1b"}.Field())
}
