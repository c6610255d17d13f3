package sqlsession

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TechXTT/ydbc/pkg/parameter"
	"github.com/TechXTT/ydbc/pkg/types"
)

// bindNamed rewrites YQL-style $name placeholders to '?' and returns the
// matching arguments in order of appearance. Quoted text, comments and
// dollar-quoted bodies are left alone, as are numeric placeholders such as $1.
func bindNamed(query string, params *parameter.Params) (string, []any, error) {
	var (
		b    strings.Builder
		args []any
	)
	b.Grow(len(query))
	for i := 0; i < len(query); {
		if end, ok := literalEnd(query, i); ok {
			b.WriteString(query[i:end])
			i = end
			continue
		}
		c := query[i]
		if c == '$' && i+1 < len(query) && isIdentStart(query[i+1]) {
			j := i + 1
			for j < len(query) && isIdentPart(query[j]) {
				j++
			}
			name := query[i:j]
			v, ok := params.Get(name)
			if !ok {
				return "", nil, fmt.Errorf("sqlsession: no value bound for %s", name)
			}
			args = append(args, driverArg(v))
			b.WriteByte('?')
			i = j
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String(), args, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// driverArg converts a typed value into something database/sql drivers accept.
func driverArg(v types.Value) any {
	switch x := v.Any().(type) {
	case types.DateValue:
		return x.Time()
	case types.DatetimeValue:
		return time.Time(x)
	case types.TzDateValue:
		return time.Time(x)
	case types.TzDatetimeValue:
		return time.Time(x)
	case types.TzTimestampValue:
		return time.Time(x)
	case types.YSON:
		return []byte(x)
	case types.JSONText:
		return string(x)
	case types.JSONDocumentText:
		return string(x)
	case time.Duration:
		return x.Microseconds()
	case uuid.UUID:
		return x.String()
	case decimal.Decimal:
		return x.String()
	default:
		return x
	}
}
