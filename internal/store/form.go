package store

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Field identifies one input of a draft form.
type Field string

// FieldSpec binds a field to its setter and validator.
type FieldSpec[D any] struct {
	Name     Field
	Set      func(d *D, value any) error
	Validate func(d D) error
}

// Schema is the static table of fields a draft exposes, in display order.
type Schema[D any] struct {
	specs map[Field]FieldSpec[D]
	order []Field
}

func NewSchema[D any](specs ...FieldSpec[D]) Schema[D] {
	s := Schema[D]{
		specs: make(map[Field]FieldSpec[D], len(specs)),
		order: make([]Field, 0, len(specs)),
	}
	for _, spec := range specs {
		if _, dup := s.specs[spec.Name]; dup {
			panic(fmt.Sprintf("store: duplicate field %q", spec.Name))
		}
		s.specs[spec.Name] = spec
		s.order = append(s.order, spec.Name)
	}
	return s
}

func (s Schema[D]) Fields() []Field {
	out := make([]Field, len(s.order))
	copy(out, s.order)
	return out
}

func (s Schema[D]) Has(f Field) bool {
	_, ok := s.specs[f]
	return ok
}

func (s Schema[D]) lookup(f Field) (FieldSpec[D], bool) {
	spec, ok := s.specs[f]
	return spec, ok
}

func runRules[V any](v V, rules []func(V) error) error {
	for _, rule := range rules {
		if err := rule(v); err != nil {
			return err
		}
	}
	return nil
}

func StringField[D any](name Field, ref func(*D) *string, rules ...func(string) error) FieldSpec[D] {
	return FieldSpec[D]{
		Name: name,
		Set: func(d *D, value any) error {
			switch v := value.(type) {
			case string:
				*ref(d) = v
			case fmt.Stringer:
				*ref(d) = v.String()
			case nil:
				*ref(d) = ""
			default:
				return fmt.Errorf("field %q: expected string, got %T", name, value)
			}
			return nil
		},
		Validate: func(d D) error {
			return runRules(*ref(&d), rules)
		},
	}
}

func IntField[D any](name Field, ref func(*D) *int, rules ...func(int) error) FieldSpec[D] {
	return FieldSpec[D]{
		Name: name,
		Set: func(d *D, value any) error {
			n, err := toInt(value)
			if err != nil {
				return fmt.Errorf("field %q: %w", name, err)
			}
			*ref(d) = n
			return nil
		},
		Validate: func(d D) error {
			return runRules(*ref(&d), rules)
		},
	}
}

func DecimalField[D any](name Field, ref func(*D) *decimal.Decimal, rules ...func(decimal.Decimal) error) FieldSpec[D] {
	return FieldSpec[D]{
		Name: name,
		Set: func(d *D, value any) error {
			dec, err := toDecimal(value)
			if err != nil {
				return fmt.Errorf("field %q: %w", name, err)
			}
			*ref(d) = dec
			return nil
		},
		Validate: func(d D) error {
			return runRules(*ref(&d), rules)
		},
	}
}

func ImageField[D any](name Field, ref func(*D) **Image, rules ...func(*Image) error) FieldSpec[D] {
	return FieldSpec[D]{
		Name: name,
		Set: func(d *D, value any) error {
			switch v := value.(type) {
			case *Image:
				*ref(d) = v
			case Image:
				img := v
				*ref(d) = &img
			case nil:
				*ref(d) = nil
			default:
				return fmt.Errorf("field %q: expected image, got %T", name, value)
			}
			return nil
		},
		Validate: func(d D) error {
			return runRules(*ref(&d), rules)
		},
	}
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("expected whole number, got %v", v)
		}
		return int(v), nil
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("expected whole number, got %q", v)
		}
		return n, nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("expected number, got %T", value)
	}
}

func toDecimal(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return decimal.Zero, nil
		}
		dec, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("expected amount, got %q", v)
		}
		return dec, nil
	case nil:
		return decimal.Zero, nil
	default:
		return decimal.Zero, fmt.Errorf("expected amount, got %T", value)
	}
}
