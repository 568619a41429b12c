package arith

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	t.Parallel()

	got, err := Add(&AddArgs{Left: 1, Right: 2})
	require.NoError(t, err)
	require.Equal(t, uint64(3), got)

	_, err = Add(&AddArgs{Left: math.MaxUint64, Right: 1})
	require.ErrorContains(t, err, "overflows")
}

func TestMultiply(t *testing.T) {
	t.Parallel()

	got, err := Multiply(&MultiplyArgs{Left: 6, Right: 7})
	require.NoError(t, err)
	require.Equal(t, uint64(42), got)

	got, err = Multiply(&MultiplyArgs{Left: 0, Right: math.MaxUint64})
	require.NoError(t, err)
	require.Zero(t, got)

	_, err = Multiply(&MultiplyArgs{Left: math.MaxUint64, Right: 2})
	require.ErrorContains(t, err, "overflows")
}

func TestDivide(t *testing.T) {
	t.Parallel()

	got, err := Divide(&DivideArgs{Left: 9, Right: 2})
	require.NoError(t, err)
	require.Equal(t, 4.5, got)

	_, err = Divide(&DivideArgs{Left: 1, Right: 0})
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestAddGeneric(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		left      string
		right     string
		expected  string
		expectErr string
	}{
		{name: "integers", left: "2", right: "3", expected: "5"},
		{name: "negative integers", left: "-2", right: "-3", expected: "-5"},
		{name: "decimals", left: "1.5", right: "2.25", expected: "3.75"},
		{name: "mixed", left: "1", right: "0.5", expected: "1.5"},
		{name: "integer overflow falls back to float", left: "9223372036854775807", right: "1", expected: "9.223372036854776e+18"},
		{name: "bad left", left: "one", right: "1", expectErr: `left operand "one"`},
		{name: "bad right", left: "1", right: "two", expectErr: `right operand "two"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := AddGeneric(&AddGenericArgs{Left: tc.left, Right: tc.right})

			if tc.expectErr != "" {
				require.ErrorContains(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}
