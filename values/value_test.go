package values_test

import (
	"math"
	"testing"

	"github.com/avm2/avm2/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBoolean(t *testing.T) {
	assert.False(t, values.Undefined().ToBoolean())
	assert.False(t, values.Null().ToBoolean())
	assert.False(t, values.NewInt(0).ToBoolean())
	assert.True(t, values.NewInt(-1).ToBoolean())
	assert.False(t, values.NewNumber(math.NaN()).ToBoolean())
	assert.False(t, values.NewString("").ToBoolean())
	assert.True(t, values.NewString("0").ToBoolean())
}

func TestToInt32Wraparound(t *testing.T) {
	v := values.NewNumber(4294967296 + 5)
	require.Equal(t, int32(5), v.ToInt32(nil))

	v2 := values.NewNumber(-1)
	require.Equal(t, int32(-1), v2.ToInt32(nil))
	require.Equal(t, uint32(4294967295), v2.ToUint32(nil))
}

func TestToNumberFromString(t *testing.T) {
	cases := map[string]float64{
		"":        0,
		"  42  ":  42,
		"-3.5":    -3.5,
		"0x1F":    31,
		"Infinity": math.Inf(1),
		"-Infinity": math.Inf(-1),
		"not a number": math.NaN(),
	}
	for in, want := range cases {
		got := values.NewString(in).ToNumber(nil)
		if math.IsNaN(want) {
			assert.True(t, math.IsNaN(got), "input %q", in)
			continue
		}
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestToStringNumberRoundTrip(t *testing.T) {
	for _, f := range []float64{0, 1, -1, 3.25, 123456789, 1e21, 1e-7, -0.0001} {
		s := values.NewNumber(f).ToString(nil)
		back := values.NewString(s).ToNumber(nil)
		assert.Equal(t, f, back, "round trip of %v via %q", f, s)
	}
}

func TestToStringSpecials(t *testing.T) {
	assert.Equal(t, "NaN", values.NewNumber(math.NaN()).ToString(nil))
	assert.Equal(t, "Infinity", values.NewNumber(math.Inf(1)).ToString(nil))
	assert.Equal(t, "-Infinity", values.NewNumber(math.Inf(-1)).ToString(nil))
	assert.Equal(t, "undefined", values.Undefined().ToString(nil))
	assert.Equal(t, "null", values.Null().ToString(nil))
}

func TestStrictEqualsNaN(t *testing.T) {
	nan := values.NewNumber(math.NaN())
	assert.False(t, nan.StrictEquals(nan))
}

func TestStrictEqualsKindMismatch(t *testing.T) {
	assert.False(t, values.NewInt(1).StrictEquals(values.NewString("1")))
	assert.True(t, values.NewInt(1).StrictEquals(values.NewInt(1)))
}

func TestLooseEqualsNumericStringCoercion(t *testing.T) {
	assert.True(t, values.NewInt(42).Equals(nil, values.NewString("42")))
	assert.True(t, values.NewString("42").Equals(nil, values.NewInt(42)))
	assert.True(t, values.NewBoolean(true).Equals(nil, values.NewInt(1)))
	assert.True(t, values.Null().Equals(nil, values.Undefined()))
	assert.False(t, values.Null().Equals(nil, values.NewInt(0)))
}

func TestCompareStrings(t *testing.T) {
	r, undef := values.Compare(nil, values.NewString("apple"), values.NewString("banana"))
	require.False(t, undef)
	assert.Equal(t, -1, r)
}

func TestCompareNaNUndefined(t *testing.T) {
	_, undef := values.Compare(nil, values.NewNumber(math.NaN()), values.NewInt(1))
	assert.True(t, undef)
}

// fakeObjectHost is a minimal values.Host whose ToPrimitiveNumber/String
// never themselves return an Object, unlike the buggy ToObject route
// TestLooseEqualsObjectDoesNotRecurse guards against.
type fakeObjectHost struct{ number float64 }

func (h fakeObjectHost) ToPrimitiveNumber(obj *values.Value) float64 { return h.number }
func (h fakeObjectHost) ToPrimitiveString(obj *values.Value) string {
	return values.NewNumber(h.number).ToString(nil)
}
func (h fakeObjectHost) Box(primitive *values.Value) *values.Value { return primitive }
func (h fakeObjectHost) CoerceToType(v *values.Value, typeName string) (*values.Value, error) {
	return v, nil
}

// TestLooseEqualsObjectDoesNotRecurse guards against a prior bug where
// comparing an Object to a Number/String routed through ToObject (a no-op
// for an already-Object value) instead of ToPrimitive, recursing into the
// same branch forever. someObject == 5 must terminate via ToPrimitive.
func TestLooseEqualsObjectDoesNotRecurse(t *testing.T) {
	host := fakeObjectHost{number: 5}
	obj := values.NewObject(struct{}{})

	assert.True(t, obj.Equals(host, values.NewInt(5)))
	assert.True(t, values.NewInt(5).Equals(host, obj))
	assert.False(t, obj.Equals(host, values.NewInt(6)))
	assert.True(t, obj.Equals(host, values.NewString("5")))
}
