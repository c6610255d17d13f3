package parameter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TechXTT/ydbc/pkg/spi"
	"github.com/TechXTT/ydbc/pkg/types"
)

func TestParams_SetNormalizesNames(t *testing.T) {
	p := NewParams()
	require.NoError(t, p.Set("id", int32(1)))
	require.NoError(t, p.Set("$name", "bob"))
	require.NoError(t, p.Set("$id", int32(2)))

	require.Equal(t, 2, p.Len())
	require.Equal(t, []string{"$id", "$name"}, p.Names())

	v, ok := p.Get("id")
	require.True(t, ok)
	require.Equal(t, int32(2), v.Any())
}

func TestParams_SetReportsResolutionError(t *testing.T) {
	p := NewParams()
	err := p.Set("x", struct{}{})
	require.ErrorIs(t, err, spi.ErrUnresolvedType)
	require.Contains(t, err.Error(), "$x")
	require.Zero(t, p.Len())

	require.Error(t, p.Set("", int32(1)))
}

func TestParams_Declare(t *testing.T) {
	p := NewParams()
	require.NoError(t, p.Set("name", "bob"))
	require.NoError(t, p.Set("id", spi.In(types.Int64, int64(3))))
	require.Equal(t, "DECLARE $id AS Int64;\nDECLARE $name AS Utf8;\n", p.Declare())
}

func TestParams_NilSafe(t *testing.T) {
	var p *Params
	require.Zero(t, p.Len())
	require.Nil(t, p.Names())
	_, ok := p.Get("x")
	require.False(t, ok)
}

func TestParams_Clone(t *testing.T) {
	p := NewParams()
	require.NoError(t, p.Set("a", int32(1)))
	c := p.Clone()
	require.NoError(t, p.Set("b", int32(2)))
	require.Equal(t, []string{"$a"}, c.Names())

	var nilParams *Params
	require.Zero(t, nilParams.Clone().Len())
}

func TestParams_ZeroValueIsUsable(t *testing.T) {
	var p Params
	require.NoError(t, p.Set("id", int64(7)))
	require.Equal(t, []string{"$id"}, p.Names())

	v, ok := p.Get("$id")
	require.True(t, ok)
	require.Equal(t, int64(7), v.Any())
	require.Equal(t, 1, p.Clone().Len())
}
