// Package patch moves a flat JSON record towards a partial overlay using
// RFC6902 operations.
package patch

import (
	"errors"
	"strings"
)

const (
	OperationAdd     = "add"
	OperationReplace = "replace"
	OperationRemove  = "remove"
)

var ErrPathNotAllowed = errors.New("path not allowed")

// Operation is a single RFC6902 JSON Patch operation.
type Operation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// Field returns the unescaped top-level member the operation targets.
func (o Operation) Field() string {
	path := strings.TrimPrefix(o.Path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return pointerUnescaper.Replace(path)
}

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)
