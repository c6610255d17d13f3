package sqlsession

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/TechXTT/ydbc/pkg/parameter"
	"github.com/TechXTT/ydbc/pkg/types"
)

func mustParams(t *testing.T, kv ...any) *parameter.Params {
	t.Helper()
	p := parameter.NewParams()
	for i := 0; i < len(kv); i += 2 {
		require.NoError(t, p.Set(kv[i].(string), kv[i+1]))
	}
	return p
}

func TestBindNamed_OrderAndRepeats(t *testing.T) {
	p := mustParams(t, "a", int64(1), "b", "x")
	q, args, err := bindNamed("SELECT * FROM t WHERE a = $a OR b = $b OR a2 = $a", p)
	require.NoError(t, err)
	require.Equal(t, "SELECT * FROM t WHERE a = ? OR b = ? OR a2 = ?", q)
	require.Equal(t, []any{int64(1), "x", int64(1)}, args)
}

func TestBindNamed_SkipsQuotedAndNumeric(t *testing.T) {
	p := mustParams(t, "id", int64(5))
	q, args, err := bindNamed("SELECT '$id', \"$x\", `$y`, $1 FROM t WHERE id = $id", p)
	require.NoError(t, err)
	require.Equal(t, "SELECT '$id', \"$x\", `$y`, $1 FROM t WHERE id = ?", q)
	require.Equal(t, []any{int64(5)}, args)
}

func TestBindNamed_MissingParameter(t *testing.T) {
	_, _, err := bindNamed("SELECT $missing", parameter.NewParams())
	require.ErrorContains(t, err, "$missing")
}

func TestBindNamed_NoParams(t *testing.T) {
	q, args, err := bindNamed("SELECT 1; SELECT 2", nil)
	require.NoError(t, err)
	require.Equal(t, "SELECT 1; SELECT 2", q)
	require.Empty(t, args)
}

func TestDriverArg(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	cases := []struct {
		in   any
		want any
	}{
		{types.DateOf(ts), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{types.DatetimeValue(ts), ts},
		{types.TzTimestampValue(ts), ts},
		{types.YSON("{a=1}"), []byte("{a=1}")},
		{types.JSONText(`{"a":1}`), `{"a":1}`},
		{types.JSONDocumentText(`{}`), `{}`},
		{1500 * time.Microsecond, int64(1500)},
		{id, id.String()},
		{decimal.RequireFromString("1.5"), "1.5"},
		{int16(3), int16(3)},
	}
	for _, c := range cases {
		v, err := parameter.Resolve(c.in)
		require.NoError(t, err)
		require.Equal(t, c.want, driverArg(v), "%T", c.in)
	}
}
