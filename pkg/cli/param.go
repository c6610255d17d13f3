package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TechXTT/ydbc/pkg/types"
)

// namedValue is a parameter given on the command line.
type namedValue struct {
	name  string
	value types.Value
}

// parseParam parses "name=Kind:value", where Kind is a kind name ("INT64")
// or a YQL type name ("Int64", "Utf8").
func parseParam(s string) (namedValue, error) {
	name, rest, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return namedValue{}, fmt.Errorf("param %q: want name=Kind:value", s)
	}
	kindName, raw, ok := strings.Cut(rest, ":")
	if !ok {
		return namedValue{}, fmt.Errorf("param %q: want name=Kind:value", s)
	}
	k, err := types.ParseKind(kindName)
	if err != nil {
		return namedValue{}, fmt.Errorf("param %s: %w", name, err)
	}
	host, err := parseHost(k, raw)
	if err != nil {
		return namedValue{}, fmt.Errorf("param %s: parse %s %q: %w", name, k, raw, err)
	}
	v, err := k.New(host)
	if err != nil {
		return namedValue{}, fmt.Errorf("param %s: %w", name, err)
	}
	return namedValue{name: name, value: v}, nil
}

// parseHost converts text into the host type of k.
func parseHost(k types.Kind, s string) (any, error) {
	switch k {
	case types.Bool:
		return strconv.ParseBool(s)
	case types.Int8:
		n, err := strconv.ParseInt(s, 10, 8)
		return int8(n), err
	case types.Int16:
		n, err := strconv.ParseInt(s, 10, 16)
		return int16(n), err
	case types.Int32:
		n, err := strconv.ParseInt(s, 10, 32)
		return int32(n), err
	case types.Int64:
		return strconv.ParseInt(s, 10, 64)
	case types.Float:
		f, err := strconv.ParseFloat(s, 32)
		return float32(f), err
	case types.Double:
		return strconv.ParseFloat(s, 64)
	case types.Bytes:
		return []byte(s), nil
	case types.Text:
		return s, nil
	case types.Yson:
		return types.YSON(s), nil
	case types.JSON:
		return types.JSONText(s), nil
	case types.JSONDocument:
		return types.JSONDocumentText(s), nil
	case types.UUID:
		return uuid.Parse(s)
	case types.Date:
		t, err := time.Parse(time.DateOnly, s)
		return types.DateOf(t), err
	case types.Datetime:
		t, err := time.Parse(time.RFC3339, s)
		return types.DatetimeValue(t), err
	case types.Timestamp:
		return time.Parse(time.RFC3339Nano, s)
	case types.Interval:
		return time.ParseDuration(s)
	case types.TzDate:
		t, err := time.Parse(time.RFC3339, s)
		return types.TzDateValue(t), err
	case types.TzDatetime:
		t, err := time.Parse(time.RFC3339, s)
		return types.TzDatetimeValue(t), err
	case types.TzTimestamp:
		t, err := time.Parse(time.RFC3339Nano, s)
		return types.TzTimestampValue(t), err
	case types.Decimal:
		return decimal.NewFromString(s)
	}
	return nil, fmt.Errorf("no text form for %s", k)
}
