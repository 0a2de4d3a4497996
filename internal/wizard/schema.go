package wizard

import (
	"fmt"
	"strconv"
	"strings"
)

// PropertyType declares how an incoming value is coerced
type PropertyType string

const (
	TypeBool    PropertyType = "bool"
	TypeInteger PropertyType = "integer"
	TypeString  PropertyType = "string"
)

// Property describes one step property. Options, when not nil, is the
// allow-list of non-empty values.
type Property struct {
	Name    string
	Type    PropertyType
	Default interface{}
	Options []interface{}
}

// Schema is the ordered list of step properties
type Schema []Property

// Lookup returns the property declared under name
func (s Schema) Lookup(name string) (Property, bool) {
	for _, p := range s {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Defaults returns every property set to its coerced default
func (s Schema) Defaults() map[string]interface{} {
	values := make(map[string]interface{}, len(s))
	for _, p := range s {
		values[p.Name] = p.Type.Coerce(p.Default)
	}
	return values
}

// Coerce converts value to the canonical Go type of t: bool, int or string
func (t PropertyType) Coerce(value interface{}) interface{} {
	switch t {
	case TypeBool:
		return toBool(value)
	case TypeInteger:
		return toInt(value)
	default:
		return toString(value)
	}
}

// CoerceAll coerces every value of values
func (t PropertyType) CoerceAll(values []interface{}) []interface{} {
	if values == nil {
		return nil
	}
	coerced := make([]interface{}, 0, len(values))
	for _, v := range values {
		coerced = append(coerced, t.Coerce(v))
	}
	return coerced
}

// IsEmptyValue reports false, 0, "" and nil. Empty values skip the options check.
func IsEmptyValue(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return !v
	case int:
		return v == 0
	case string:
		return v == ""
	default:
		return false
	}
}

func containsValue(options []interface{}, value interface{}) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

func toBool(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
		return v != ""
	default:
		return true
	}
}

func toInt(value interface{}) int {
	switch v := value.(type) {
	case nil:
		return 0
	case bool:
		if v {
			return 1
		}
		return 0
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func toString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
