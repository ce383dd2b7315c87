package domain

import (
	"reflect"
)

// Diff returns the attributes that differ between a snapshot taken before an
// invocation and the context afterwards. Added or modified keys carry their new
// value; deleted keys are present with a nil value. It returns nil when nothing
// changed.
func Diff(before map[string]any, after *Context) map[string]any {
	if after == nil {
		return nil
	}
	delta := make(map[string]any)

	for _, k := range after.keys {
		newVal := after.values[k]
		oldVal, exists := before[k]
		if !exists || !reflect.DeepEqual(oldVal, newVal) {
			delta[k] = newVal
		}
	}

	for k := range before {
		if _, exists := after.values[k]; !exists {
			delta[k] = nil
		}
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}
