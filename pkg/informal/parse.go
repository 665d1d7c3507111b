package informal

import (
	"encoding"
	"fmt"
	"strconv"
	"time"
)

// ParseText converts trimmed text to T using the standard conversion for T.
//
// Supported targets are string, bool, the sized integer and float kinds,
// time.Duration and any type whose pointer implements encoding.TextUnmarshaler.
// Any other T yields an error wrapping ErrUnsupportedType.
func ParseText[T any](text string) (T, error) {
	var value T
	if err := parseInto(&value, text); err != nil {
		var zero T
		return zero, err
	}
	return value, nil
}

// Parsable reports whether ParseText supports T.
func Parsable[T any]() bool {
	var value T
	_, ok := any(&value).(encoding.TextUnmarshaler)
	if ok {
		return true
	}
	switch any(&value).(type) {
	case *string, *bool, *time.Duration,
		*int, *int8, *int16, *int32, *int64,
		*uint, *uint8, *uint16, *uint32, *uint64,
		*float32, *float64:
		return true
	}
	return false
}

func parseInto(dst any, text string) error {
	if u, ok := dst.(encoding.TextUnmarshaler); ok {
		return u.UnmarshalText([]byte(text))
	}

	switch p := dst.(type) {
	case *string:
		*p = text
	case *bool:
		v, err := strconv.ParseBool(text)
		if err != nil {
			return err
		}
		*p = v
	case *time.Duration:
		v, err := time.ParseDuration(text)
		if err != nil {
			return err
		}
		*p = v
	case *int:
		v, err := strconv.ParseInt(text, 10, strconv.IntSize)
		if err != nil {
			return err
		}
		*p = int(v)
	case *int8:
		v, err := strconv.ParseInt(text, 10, 8)
		if err != nil {
			return err
		}
		*p = int8(v)
	case *int16:
		v, err := strconv.ParseInt(text, 10, 16)
		if err != nil {
			return err
		}
		*p = int16(v)
	case *int32:
		v, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return err
		}
		*p = int32(v)
	case *int64:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return err
		}
		*p = v
	case *uint:
		v, err := strconv.ParseUint(text, 10, strconv.IntSize)
		if err != nil {
			return err
		}
		*p = uint(v)
	case *uint8:
		v, err := strconv.ParseUint(text, 10, 8)
		if err != nil {
			return err
		}
		*p = uint8(v)
	case *uint16:
		v, err := strconv.ParseUint(text, 10, 16)
		if err != nil {
			return err
		}
		*p = uint16(v)
	case *uint32:
		v, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return err
		}
		*p = uint32(v)
	case *uint64:
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return err
		}
		*p = v
	case *float32:
		v, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return err
		}
		*p = float32(v)
	case *float64:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return err
		}
		*p = v
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, dst)
	}
	return nil
}
