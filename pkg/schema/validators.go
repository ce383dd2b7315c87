package schema

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Validator is a custom predicate attached to a rule.
// It returns a message and false when value is rejected.
type Validator func(attribute string, value any) (string, bool)

// Format accepts a *regexp.Regexp or a pattern string.
// String values (and Symbols) must match the pattern.
func Format(pattern any) (Validator, error) {
	var re *regexp.Regexp
	switch p := pattern.(type) {
	case *regexp.Regexp:
		if p == nil {
			return nil, fmt.Errorf("%w: nil pattern", ErrInvalidFormat)
		}
		re = p
	case string:
		compiled, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		re = compiled
	default:
		return nil, fmt.Errorf("%w: expected pattern, got %T", ErrInvalidFormat, pattern)
	}

	return func(attribute string, value any) (string, bool) {
		var s string
		switch v := value.(type) {
		case string:
			s = v
		case Symbol:
			s = string(v)
		default:
			return fmt.Sprintf("%s must match format %s", attribute, re.String()), false
		}
		if !re.MatchString(s) {
			return fmt.Sprintf("%s must match format %s", attribute, re.String()), false
		}
		return "", true
	}, nil
}

// RespondsTo requires the value's method set to include method.
func RespondsTo(method string) (Validator, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		return nil, fmt.Errorf("%w: method name", ErrEmptyArgument)
	}
	return func(attribute string, value any) (string, bool) {
		if value != nil && reflect.ValueOf(value).MethodByName(method).IsValid() {
			return "", true
		}
		return fmt.Sprintf("%s must respond to %s", attribute, method), false
	}, nil
}

// OneOf restricts the value to a fixed enumeration.
// Numeric members compare by value regardless of their Go type.
func OneOf(values ...any) (Validator, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: enumeration", ErrEmptyArgument)
	}
	allowed := append([]any(nil), values...)
	labels := make([]string, len(allowed))
	for i, v := range allowed {
		labels[i] = fmt.Sprintf("%v", v)
	}
	list := strings.Join(labels, ", ")

	return func(attribute string, value any) (string, bool) {
		for _, candidate := range allowed {
			if equalValues(candidate, value) {
				return "", true
			}
		}
		return fmt.Sprintf("%s must be one of %s", attribute, list), false
	}, nil
}

// InRange restricts the value to the closed interval [min, max].
// Bounds may be numbers, strings or times, but both must share the same family.
func InRange(min, max any) (Validator, error) {
	family, err := rangeFamily(min, max)
	if err != nil {
		return nil, err
	}
	if compare(family, min, max) > 0 {
		return nil, fmt.Errorf("%w: range %v..%v", ErrEmptyArgument, min, max)
	}

	return func(attribute string, value any) (string, bool) {
		if sameFamily(family, value) && compare(family, min, value) <= 0 && compare(family, value, max) <= 0 {
			return "", true
		}
		return fmt.Sprintf("%s must be in range %v..%v", attribute, min, max), false
	}, nil
}

// Satisfies wraps an arbitrary predicate. The message reads "<attribute> must <description>".
func Satisfies(description string, predicate func(any) bool) (Validator, error) {
	if predicate == nil {
		return nil, fmt.Errorf("%w: predicate", ErrEmptyArgument)
	}
	return func(attribute string, value any) (string, bool) {
		if predicate(value) {
			return "", true
		}
		return fmt.Sprintf("%s must %s", attribute, description), false
	}, nil
}

type family int

const (
	familyNumber family = iota
	familyString
	familyTime
)

func isNumber(v any) bool { return isInteger(v) || isFloat(v) }

func rangeFamily(min, max any) (family, error) {
	switch {
	case isNumber(min) && isNumber(max):
		return familyNumber, nil
	case isString(min) && isString(max):
		return familyString, nil
	case isTime(min) && isTime(max):
		return familyTime, nil
	}
	return 0, fmt.Errorf("%w: bounds %T and %T", ErrInvalidRange, min, max)
}

func sameFamily(f family, v any) bool {
	switch f {
	case familyNumber:
		return isNumber(v)
	case familyString:
		return isString(v)
	default:
		return isTime(v)
	}
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isTime(v any) bool {
	_, ok := v.(time.Time)
	return ok
}

// compare assumes both operands belong to f.
func compare(f family, a, b any) int {
	switch f {
	case familyNumber:
		x, y := cast.ToFloat64(a), cast.ToFloat64(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case familyString:
		return strings.Compare(a.(string), b.(string))
	default:
		return a.(time.Time).Compare(b.(time.Time))
	}
}

func equalValues(a, b any) bool {
	if isNumber(a) && isNumber(b) {
		return cast.ToFloat64(a) == cast.ToFloat64(b)
	}
	return reflect.DeepEqual(a, b)
}
