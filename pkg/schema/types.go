package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Kind names a primitive type understood by the rule engine.
type Kind string

const (
	KindString   Kind = "string"
	KindInteger  Kind = "integer"
	KindFloat    Kind = "float"
	KindNumeric  Kind = "numeric"
	KindMap      Kind = "map"
	KindSequence Kind = "sequence"
	KindBoolean  Kind = "boolean"
	KindSymbol   Kind = "symbol"
	KindTime     Kind = "time"
	KindDate     Kind = "date"
)

// kindAliases maps accepted descriptor spellings to their canonical kind.
var kindAliases = map[string]Kind{
	"string":   KindString,
	"str":      KindString,
	"integer":  KindInteger,
	"int":      KindInteger,
	"float":    KindFloat,
	"numeric":  KindNumeric,
	"number":   KindNumeric,
	"map":      KindMap,
	"hash":     KindMap,
	"sequence": KindSequence,
	"array":    KindSequence,
	"slice":    KindSequence,
	"list":     KindSequence,
	"boolean":  KindBoolean,
	"bool":     KindBoolean,
	"symbol":   KindSymbol,
	"time":     KindTime,
	"date":     KindDate,
}

// Symbol is an interned attribute-like name stored as a value.
type Symbol string

// Date is a calendar date without a clock component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

var timeType = reflect.TypeOf(time.Time{})

// Type is either a primitive kind or a nominal Go type.
// Exactly one of Kind and Nominal is set.
type Type struct {
	Kind    Kind
	Nominal reflect.Type
}

// Primitive returns the type descriptor for a primitive kind.
func Primitive(k Kind) Type { return Type{Kind: k} }

// Nominal returns a type descriptor matching values assignable to T.
func Nominal[T any]() Type {
	return Type{Nominal: reflect.TypeOf((*T)(nil)).Elem()}
}

// NominalOf returns a type descriptor for an already reflected type.
func NominalOf(t reflect.Type) Type { return Type{Nominal: t} }

// Name returns the human-readable name used in error messages.
func (t Type) Name() string {
	if t.Nominal != nil {
		return t.Nominal.String()
	}
	return string(t.Kind)
}

// Matches reports whether value conforms to the descriptor.
func (t Type) Matches(value any) bool {
	if t.Nominal != nil {
		if value == nil {
			return false
		}
		return reflect.TypeOf(value).AssignableTo(t.Nominal)
	}

	switch t.Kind {
	case KindString:
		_, ok := value.(string)
		return ok
	case KindInteger:
		return isInteger(value)
	case KindFloat:
		return isFloat(value)
	case KindNumeric:
		return isInteger(value) || isFloat(value)
	case KindMap:
		return value != nil && reflect.TypeOf(value).Kind() == reflect.Map
	case KindSequence:
		if value == nil {
			return false
		}
		k := reflect.TypeOf(value).Kind()
		return k == reflect.Slice || k == reflect.Array
	case KindBoolean:
		_, ok := value.(bool)
		return ok
	case KindSymbol:
		_, ok := value.(Symbol)
		return ok
	case KindTime:
		_, ok := value.(time.Time)
		return ok
	case KindDate:
		switch v := value.(type) {
		case Date:
			return true
		case time.Time:
			h, m, s := v.Clock()
			return h == 0 && m == 0 && s == 0 && v.Nanosecond() == 0
		}
		return false
	default:
		return false
	}
}

func isInteger(value any) bool {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		_, err := v.Int64()
		return err == nil
	default:
		return false
	}
}

func isFloat(value any) bool {
	switch v := value.(type) {
	case float32, float64:
		return true
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return false
		}
		_, err := v.Float64()
		return err == nil
	default:
		return false
	}
}

// ParseType converts a descriptor into a Type.
// Accepted descriptors are Type, Kind, kind names (with a few aliases such as "int"
// or "array") and reflect.Type.
func ParseType(descriptor any) (Type, error) {
	switch d := descriptor.(type) {
	case Type:
		if d.Nominal == nil {
			return ParseType(d.Kind)
		}
		return d, nil
	case Kind:
		return ParseType(string(d))
	case string:
		k, ok := kindAliases[strings.ToLower(strings.TrimPrefix(strings.TrimSpace(d), ":"))]
		if !ok {
			return Type{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidType, d)
		}
		return Primitive(k), nil
	case reflect.Type:
		if d == nil {
			return Type{}, fmt.Errorf("%w: nil reflect.Type", ErrInvalidType)
		}
		return NominalOf(d), nil
	default:
		return Type{}, fmt.Errorf("%w: unsupported descriptor %T", ErrInvalidType, descriptor)
	}
}

// TypeName describes the dynamic type of value using the kind vocabulary when possible.
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	switch value.(type) {
	case string:
		return string(KindString)
	case Symbol:
		return string(KindSymbol)
	case bool:
		return string(KindBoolean)
	case time.Time:
		return string(KindTime)
	case Date:
		return string(KindDate)
	}
	if isInteger(value) {
		return string(KindInteger)
	}
	if isFloat(value) {
		return string(KindFloat)
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Map:
		return string(KindMap)
	case reflect.Slice, reflect.Array:
		return string(KindSequence)
	}
	return fmt.Sprintf("%T", value)
}
