package omf

import (
	"errors"
	"fmt"
	"sort"

	"schemadiff/core/utils"
)

// Recognized option keys.
const (
	OptCaseSensitive          = "CaseSensitive"
	OptMaxTableCommentLength  = "maxTableCommentLength"
	OptMaxIndexCommentLength  = "maxIndexCommentLength"
	OptMaxColumnCommentLength = "maxColumnCommentLength"
	OptSkipRoutineDefiner     = "SkipRoutineDefiner"
	OptFloatTolerance         = "FloatTolerance"
)

var (
	// ErrUnknownOption is returned for option keys no policy understands.
	ErrUnknownOption = errors.New("unknown option")
	// ErrInvalidOption is returned for option values of the wrong shape.
	ErrInvalidOption = errors.New("invalid option value")
	// ErrConflictingRule is returned when two rules target the same field.
	ErrConflictingRule = errors.New("conflicting rules")
)

// Options is the key/value configuration bag consumed by NewNormalized.
type Options map[string]any

// Settings is the validated form of Options.
type Settings struct {
	CaseSensitive bool
	// Comment length limits; nil means "compare the whole comment" and 0
	// means "do not compare the comment at all".
	MaxTableCommentLength  *int
	MaxIndexCommentLength  *int
	MaxColumnCommentLength *int
	SkipRoutineDefiner     bool
	FloatTolerance         float64
}

// Parse validates the bag. Keys are processed in sorted order so the first
// reported error is stable.
func (o Options) Parse() (Settings, error) {
	s := Settings{CaseSensitive: true}

	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw := o[key]
		switch key {
		case OptCaseSensitive:
			b, err := utils.ParseBool(raw)
			if err != nil {
				return s, fmt.Errorf("%w %s: %v", ErrInvalidOption, key, err)
			}
			s.CaseSensitive = b
		case OptSkipRoutineDefiner:
			b, err := utils.ParseBool(raw)
			if err != nil {
				return s, fmt.Errorf("%w %s: %v", ErrInvalidOption, key, err)
			}
			s.SkipRoutineDefiner = b
		case OptMaxTableCommentLength, OptMaxIndexCommentLength, OptMaxColumnCommentLength:
			n, err := utils.ParseInt(raw)
			if err != nil {
				return s, fmt.Errorf("%w %s: %v", ErrInvalidOption, key, err)
			}
			if n < 0 {
				return s, fmt.Errorf("%w %s: negative length %d", ErrInvalidOption, key, n)
			}
			switch key {
			case OptMaxTableCommentLength:
				s.MaxTableCommentLength = &n
			case OptMaxIndexCommentLength:
				s.MaxIndexCommentLength = &n
			default:
				s.MaxColumnCommentLength = &n
			}
		case OptFloatTolerance:
			f, err := utils.ParseFloat(raw)
			if err != nil {
				return s, fmt.Errorf("%w %s: %v", ErrInvalidOption, key, err)
			}
			if f < 0 {
				return s, fmt.Errorf("%w %s: negative tolerance %v", ErrInvalidOption, key, f)
			}
			s.FloatTolerance = f
		default:
			return s, fmt.Errorf("%w %q", ErrUnknownOption, key)
		}
	}
	return s, nil
}

// Keys returns the recognized option keys in sorted order.
func Keys() []string {
	keys := []string{
		OptCaseSensitive,
		OptMaxTableCommentLength,
		OptMaxIndexCommentLength,
		OptMaxColumnCommentLength,
		OptSkipRoutineDefiner,
		OptFloatTolerance,
	}
	sort.Strings(keys)
	return keys
}
