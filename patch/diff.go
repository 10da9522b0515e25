package patch

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/bytedance/sonic"
)

// Diff returns the operations that move current towards target. Only keys
// present in target with a non-nil value are considered, so target acts as a
// partial overlay: it can set or overwrite values but never clear them.
// Lists and objects in target are replaced wholesale.
func Diff[T any](current T, target map[string]any) ([]Operation, error) {
	currentJSON, err := sonic.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal current state: %w", err)
	}
	var currentMap map[string]any
	if err := sonic.Unmarshal(currentJSON, &currentMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal current state: %w", err)
	}
	// normalise target through the same encoder so numbers and slices compare equal
	targetJSON, err := sonic.Marshal(target)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal target state: %w", err)
	}
	var targetMap map[string]any
	if err := sonic.Unmarshal(targetJSON, &targetMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal target state: %w", err)
	}

	keys := make([]string, 0, len(targetMap))
	for key := range targetMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	ops := make([]Operation, 0, len(keys))
	for _, key := range keys {
		targetValue := targetMap[key]
		if targetValue == nil {
			continue
		}
		path := "/" + pointerEscaper.Replace(key)
		currentValue, exists := currentMap[key]
		switch {
		case !exists:
			ops = append(ops, Operation{Op: OperationAdd, Path: path, Value: targetValue})
		case !reflect.DeepEqual(currentValue, targetValue):
			ops = append(ops, Operation{Op: OperationReplace, Path: path, Value: targetValue})
		}
	}
	return ops, nil
}
