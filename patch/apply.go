package patch

import (
	"fmt"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"
)

// Apply runs ops against the JSON form of current and decodes the result
// back into T. Every op must target a member in allowed when allowed is set.
// A replace of a missing member becomes an add; a remove of a missing member
// is a no-op.
func Apply[T any](current T, ops []Operation, allowed map[string]bool) (T, error) {
	var zero T
	if len(ops) == 0 {
		return current, nil
	}
	if err := CheckPointers(ops, allowed); err != nil {
		return zero, err
	}

	doc, err := sonic.Marshal(current)
	if err != nil {
		return zero, fmt.Errorf("marshal current: %w", err)
	}
	var members map[string]any
	if err := sonic.Unmarshal(doc, &members); err != nil {
		return zero, fmt.Errorf("current is not a JSON object: %w", err)
	}
	for i := range ops {
		if _, ok := members[ops[i].Field()]; !ok && ops[i].Op == OperationReplace {
			ops[i].Op = OperationAdd
		}
	}

	raw, err := sonic.Marshal(ops)
	if err != nil {
		return zero, fmt.Errorf("marshal operations: %w", err)
	}
	decoded, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		return zero, fmt.Errorf("decode operations: %w", err)
	}
	options := jsonpatch.NewApplyOptions()
	options.AllowMissingPathOnRemove = true
	patched, err := decoded.ApplyWithOptions(doc, options)
	if err != nil {
		return zero, fmt.Errorf("apply operations: %w", err)
	}

	var out T
	if err := sonic.Unmarshal(patched, &out); err != nil {
		return zero, fmt.Errorf("decode patched value: %w", err)
	}
	return out, nil
}
