package types

import (
	"fmt"

	"github.com/TechXTT/ydbc/pkg/spi"
)

// FromPortable maps a portable type tag to its native kind.
func FromPortable(t spi.PortableType) (Kind, error) {
	switch t {
	case spi.Boolean:
		return Bool, nil
	case spi.TinyInt:
		return Int8, nil
	case spi.SmallInt:
		return Int16, nil
	case spi.Integer:
		return Int32, nil
	case spi.BigInt:
		return Int64, nil
	case spi.Char, spi.VarChar, spi.NChar, spi.NVarChar, spi.Clob, spi.NClob:
		return Text, nil
	case spi.Real, spi.Float:
		return Float, nil
	case spi.Double:
		return Double, nil
	case spi.Binary, spi.VarBinary, spi.Blob:
		return Bytes, nil
	case spi.Date:
		return Date, nil
	case spi.Time:
		return Datetime, nil
	case spi.Timestamp:
		return Timestamp, nil
	case spi.TimestampWithTimeZone:
		return TzTimestamp, nil
	case spi.TimeWithTimeZone:
		return TzDatetime, nil
	case spi.Numeric, spi.Decimal:
		return Decimal, nil
	case spi.Collection:
		return Invalid, fmt.Errorf("%w: %s", spi.ErrUnsupportedType, t)
	default:
		return Invalid, fmt.Errorf("%w: portable type %d", spi.ErrUnsupportedType, uint8(t))
	}
}
