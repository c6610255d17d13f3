package types

import (
	"fmt"
	"time"
)

// Value is a resolved, engine-native parameter value. It is only produced by
// Kind.New and never changes afterwards.
type Value struct {
	kind Kind
	v    any
}

// IsValid reports whether the value was produced by a kind constructor.
func (v Value) IsValid() bool {
	return v.kind.Valid()
}

// Kind returns the kind the value was built with.
func (v Value) Kind() Kind {
	return v.kind
}

// YQLType returns the YQL type of the value.
func (v Value) YQLType() string {
	return v.kind.YQLType()
}

// Any returns the normalized host value. Byte slices are copied.
func (v Value) Any() any {
	switch b := v.v.(type) {
	case []byte:
		return append([]byte(nil), b...)
	case YSON:
		return YSON(append([]byte(nil), b...))
	}
	return v.v
}

func (v Value) String() string {
	if !v.IsValid() {
		return "<invalid>"
	}
	switch x := v.v.(type) {
	case DatetimeValue:
		return fmt.Sprintf("%s(%s)", v.kind, time.Time(x).Format(time.RFC3339))
	case TzDateValue:
		return fmt.Sprintf("%s(%s)", v.kind, time.Time(x).Format("2006-01-02 MST"))
	case TzDatetimeValue:
		return fmt.Sprintf("%s(%s)", v.kind, time.Time(x).Format(time.RFC3339))
	case TzTimestampValue:
		return fmt.Sprintf("%s(%s)", v.kind, time.Time(x).Format(time.RFC3339Nano))
	case time.Time:
		return fmt.Sprintf("%s(%s)", v.kind, x.Format(time.RFC3339Nano))
	case []byte:
		return fmt.Sprintf("%s(%x)", v.kind, x)
	case YSON:
		return fmt.Sprintf("%s(%s)", v.kind, string(x))
	}
	return fmt.Sprintf("%s(%v)", v.kind, v.v)
}
