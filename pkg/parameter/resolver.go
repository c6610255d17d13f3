package parameter

import (
	"fmt"

	"github.com/TechXTT/ydbc/pkg/spi"
	"github.com/TechXTT/ydbc/pkg/types"
)

// Resolve converts a caller-supplied parameter into a typed value.
//
// A types.Value is returned unchanged. A spi.Parameter is built with the kind
// its declared type maps to. Any other value is matched by its Go type.
func Resolve(p any) (types.Value, error) {
	switch x := p.(type) {
	case types.Value:
		if !x.IsValid() {
			return types.Value{}, fmt.Errorf("%w: zero types.Value", spi.ErrUnresolvedType)
		}
		return x, nil
	case spi.Parameter:
		return resolveParameter(x)
	case *spi.Parameter:
		if x == nil {
			return types.Value{}, fmt.Errorf("%w: nil parameter", spi.ErrUnresolvedType)
		}
		return resolveParameter(*x)
	}

	k, ok := types.KindOf(p)
	if !ok {
		return types.Value{}, fmt.Errorf("%w: %T", spi.ErrUnresolvedType, p)
	}
	return k.New(p)
}

func resolveParameter(p spi.Parameter) (types.Value, error) {
	k, err := declaredKind(p.Type)
	if err != nil {
		return types.Value{}, err
	}
	return k.New(p.Value)
}

func declaredKind(t spi.Type) (types.Kind, error) {
	switch dt := t.(type) {
	case spi.PortableType:
		return types.FromPortable(dt)
	case types.Kind:
		if !dt.Valid() {
			return types.Invalid, fmt.Errorf("%w: kind %d", spi.ErrUnsupportedType, uint8(dt))
		}
		return dt, nil
	case nil:
		return types.Invalid, fmt.Errorf("%w: parameter without a type", spi.ErrUnsupportedType)
	default:
		return types.Invalid, fmt.Errorf("%w: %s", spi.ErrUnsupportedType, dt.Name())
	}
}
