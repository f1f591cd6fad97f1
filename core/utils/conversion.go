package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToInt converts various types to int using explicit type switching.
// It handles standard integer types, floats, strings, and byte slices.
// Unparsable input yields 0.
func ToInt(val any) int {
	i, _ := ParseInt(val)
	return i
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true", "yes").
func ToBool(val any) bool {
	b, _ := ParseBool(val)
	return b
}

// ParseInt is the strict form of ToInt: it reports input that is not an
// integral number.
func ParseInt(val any) (int, error) {
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case int32:
		return int(v), nil
	case int16:
		return int(v), nil
	case int8:
		return int(v), nil
	case uint:
		return int(v), nil
	case uint64:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint8:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%v is not an integer", v)
		}
		return int(v), nil
	case float32:
		return ParseInt(float64(v))
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", v)
		}
		return i, nil
	case []byte:
		return ParseInt(string(v))
	default:
		return 0, fmt.Errorf("unsupported integer type %T", val)
	}
}

// ParseFloat converts numbers and numeric strings to float64.
func ParseFloat(val any) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", v)
		}
		return f, nil
	case []byte:
		return ParseFloat(string(v))
	default:
		i, err := ParseInt(val)
		if err != nil {
			return 0, fmt.Errorf("unsupported number type %T", val)
		}
		return float64(i), nil
	}
}

// ParseBool is the strict form of ToBool.
func ParseBool(val any) (bool, error) {
	switch v := val.(type) {
	case bool:
		return v, nil
	case int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		i, _ := ParseInt(v)
		switch i {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return false, fmt.Errorf("%d is not a boolean", i)
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			return true, nil
		case "0", "false", "no", "off", "":
			return false, nil
		}
		return false, fmt.Errorf("%q is not a boolean", v)
	case []byte:
		return ParseBool(string(v))
	default:
		return false, fmt.Errorf("unsupported boolean type %T", val)
	}
}
