package types

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TechXTT/ydbc/pkg/internal/typeconv"
	"github.com/TechXTT/ydbc/pkg/spi"
)

// Kind is one member of the engine's closed set of value categories.
type Kind uint8

const (
	Invalid Kind = iota
	Bool
	Int8  // not supported for table columns
	Int16 // not supported for table columns
	Int32
	Int64
	Float  // can't be used in the primary key
	Double // can't be used in the primary key
	Bytes
	Text
	Yson // can't be used in the primary key
	JSON // can't be used in the primary key
	JSONDocument
	UUID // not supported for table columns
	Date
	Datetime
	Timestamp
	Interval
	TzDate
	TzDatetime
	TzTimestamp
	Decimal // Decimal(22,9) when persisted; can't be used in the primary key

	kindCount
)

// Precision and scale of decimals bound as parameters.
const (
	DecimalPrecision = 22
	DecimalScale     = 9
)

type kindInfo struct {
	name  string
	yql   string
	host  reflect.Type
	build func(v any) any
}

func identity(v any) any { return v }

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

var kinds = [kindCount]kindInfo{
	Bool:   {"BOOL", "Bool", typeOf[bool](), identity},
	Int8:   {"INT8", "Int8", typeOf[int8](), identity},
	Int16:  {"INT16", "Int16", typeOf[int16](), identity},
	Int32:  {"INT32", "Int32", typeOf[int32](), identity},
	Int64:  {"INT64", "Int64", typeOf[int64](), identity},
	Float:  {"FLOAT", "Float", typeOf[float32](), identity},
	Double: {"DOUBLE", "Double", typeOf[float64](), identity},
	Bytes: {"BYTES", "String", typeOf[[]byte](), func(v any) any {
		return append([]byte(nil), v.([]byte)...)
	}},
	Text: {"TEXT", "Utf8", typeOf[string](), identity},
	Yson: {"YSON", "Yson", typeOf[YSON](), func(v any) any {
		return YSON(append([]byte(nil), v.(YSON)...))
	}},
	JSON:         {"JSON", "Json", typeOf[JSONText](), identity},
	JSONDocument: {"JSON_DOCUMENT", "JsonDocument", typeOf[JSONDocumentText](), identity},
	UUID:         {"UUID", "Uuid", typeOf[uuid.UUID](), identity},
	Date: {"DATE", "Date", typeOf[DateValue](), func(v any) any {
		return DateOf(v.(DateValue).Time())
	}},
	Datetime: {"DATETIME", "Datetime", typeOf[DatetimeValue](), func(v any) any {
		return DatetimeValue(time.Time(v.(DatetimeValue)).UTC().Truncate(time.Second))
	}},
	Timestamp: {"TIMESTAMP", "Timestamp", typeOf[time.Time](), func(v any) any {
		return v.(time.Time).UTC().Truncate(time.Microsecond)
	}},
	Interval: {"INTERVAL", "Interval", typeOf[time.Duration](), func(v any) any {
		return v.(time.Duration).Truncate(time.Microsecond)
	}},
	TzDate: {"TZ_DATE", "TzDate", typeOf[TzDateValue](), func(v any) any {
		t := time.Time(v.(TzDateValue))
		return TzDateValue(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()))
	}},
	TzDatetime: {"TZ_DATETIME", "TzDatetime", typeOf[TzDatetimeValue](), func(v any) any {
		return TzDatetimeValue(time.Time(v.(TzDatetimeValue)).Truncate(time.Second))
	}},
	TzTimestamp: {"TZ_TIMESTAMP", "TzTimestamp", typeOf[TzTimestampValue](), func(v any) any {
		return TzTimestampValue(time.Time(v.(TzTimestampValue)).Truncate(time.Microsecond))
	}},
	Decimal: {"DECIMAL", fmt.Sprintf("Decimal(%d,%d)", DecimalPrecision, DecimalScale), typeOf[decimal.Decimal](), func(v any) any {
		return v.(decimal.Decimal).Round(DecimalScale)
	}},
}

// byHost is the bare-value inference table, filled once at init.
var byHost = make(map[reflect.Type]Kind, len(kinds))

func init() {
	for _, k := range Kinds() {
		h := kinds[k].host
		if prev, dup := byHost[h]; dup {
			panic(fmt.Sprintf("types: %s and %s both accept %s", prev, k, h))
		}
		byHost[h] = k
	}
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := Bool; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Valid reports whether k is a member of the closed set.
func (k Kind) Valid() bool {
	return k > Invalid && k < kindCount
}

// Name returns the kind name, e.g. "JSON_DOCUMENT".
func (k Kind) Name() string {
	if !k.Valid() {
		return "INVALID"
	}
	return kinds[k].name
}

func (k Kind) String() string {
	return k.Name()
}

// YQLType returns the engine type name used in DECLARE clauses.
func (k Kind) YQLType() string {
	if !k.Valid() {
		return ""
	}
	return kinds[k].yql
}

// HostType returns the only Go type the kind accepts.
func (k Kind) HostType() reflect.Type {
	if !k.Valid() {
		return nil
	}
	return kinds[k].host
}

// New builds a typed value of kind k from v. The dynamic type of v must be
// exactly the kind's host type.
func (k Kind) New(v any) (Value, error) {
	if !k.Valid() {
		return Value{}, fmt.Errorf("%w: kind %d", spi.ErrUnsupportedType, uint8(k))
	}
	info := kinds[k]
	if reflect.TypeOf(v) != info.host {
		return Value{}, fmt.Errorf("%w: %s accepts %s, got %T", spi.ErrTypeMismatch, k, info.host, v)
	}
	return Value{kind: k, v: info.build(v)}, nil
}

// KindOf infers the kind of a bare value from its Go type.
func KindOf(v any) (Kind, bool) {
	k, ok := byHost[reflect.TypeOf(v)]
	return k, ok
}

// ParseKind looks a kind up by its name or by a YQL type name.
func ParseKind(name string) (Kind, error) {
	c := typeconv.Canonical(name)
	for _, k := range Kinds() {
		if kinds[k].name == c {
			return k, nil
		}
	}
	return Invalid, fmt.Errorf("%w: %q", spi.ErrUnsupportedType, name)
}
