package store

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/media/sniffer"
)

var validate = validator.New()

// Required rejects blank strings.
func Required(label string) func(string) error {
	return func(v string) error {
		if validate.Var(strings.TrimSpace(v), "required") != nil {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func MaxLen(label string, n int) func(string) error {
	return func(v string) error {
		if validate.Var(v, fmt.Sprintf("max=%d", n)) != nil {
			return fmt.Errorf("%s must be at most %d characters", label, n)
		}
		return nil
	}
}

func MinLen(label string, n int) func(string) error {
	return func(v string) error {
		if validate.Var(v, fmt.Sprintf("min=%d", n)) != nil {
			return fmt.Errorf("%s must be at least %d characters", label, n)
		}
		return nil
	}
}

// Email accepts an empty value; pair it with Required when the field is mandatory.
func Email(label string) func(string) error {
	return func(v string) error {
		if validate.Var(strings.TrimSpace(v), "omitempty,email") != nil {
			return fmt.Errorf("%s must be a valid email", label)
		}
		return nil
	}
}

func Phone(label string) func(string) error {
	return func(v string) error {
		v = strings.TrimPrefix(strings.TrimSpace(v), "+")
		if validate.Var(v, "omitempty,numeric,min=9,max=15") != nil {
			return fmt.Errorf("%s must be a valid phone number", label)
		}
		return nil
	}
}

func OneOf(label string, allowed ...string) func(string) error {
	return func(v string) error {
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return fmt.Errorf("%s must be one of %s", label, strings.Join(allowed, ", "))
	}
}

func Positive(label string) func(int) error {
	return func(v int) error {
		if validate.Var(v, "gt=0") != nil {
			return fmt.Errorf("%s must be greater than 0", label)
		}
		return nil
	}
}

func NonNegative(label string) func(int) error {
	return func(v int) error {
		if validate.Var(v, "gte=0") != nil {
			return fmt.Errorf("%s cannot be negative", label)
		}
		return nil
	}
}

func PositiveAmount(label string) func(decimal.Decimal) error {
	return func(v decimal.Decimal) error {
		if !v.IsPositive() {
			return fmt.Errorf("%s must be greater than 0", label)
		}
		return nil
	}
}

func NonNegativeAmount(label string) func(decimal.Decimal) error {
	return func(v decimal.Decimal) error {
		if v.IsNegative() {
			return fmt.Errorf("%s cannot be negative", label)
		}
		return nil
	}
}

// Image is an uploaded file staged on a draft.
type Image struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType,omitempty"`
	Size        int64  `json:"size"`
	Data        []byte `json:"-"`
}

const MaxImageBytes = 5 << 20

var DefaultImageTypes = []sniffer.MediaType{
	sniffer.TypeJPEG,
	sniffer.TypePNG,
	sniffer.TypeWEBP,
	sniffer.TypeGIF,
	sniffer.TypeSVG,
}

// ImageRule checks size and sniffed type. A nil image passes.
func ImageRule(label string, maxBytes int, allowed ...sniffer.MediaType) func(*Image) error {
	if len(allowed) == 0 {
		allowed = DefaultImageTypes
	}
	names := make([]string, 0, len(allowed))
	for _, t := range allowed {
		names = append(names, string(t))
	}

	return func(img *Image) error {
		if img == nil {
			return nil
		}
		if len(img.Data) == 0 {
			return fmt.Errorf("%s is empty", label)
		}
		if len(img.Data) > maxBytes {
			return fmt.Errorf("%s must be at most %d MB", label, maxBytes>>20)
		}

		result, err := sniffer.DetectHead(img.Data)
		if err != nil || !containsType(allowed, result.Type) {
			return fmt.Errorf("%s must be one of: %s", label, strings.Join(names, ", "))
		}

		declared := sniffer.MediaTypeOf(img.ContentType)
		if declared != "" && declared != "application/octet-stream" && declared != result.MIME {
			return fmt.Errorf("%s content does not match its declared type", label)
		}
		return nil
	}
}

func containsType(types []sniffer.MediaType, t sniffer.MediaType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
