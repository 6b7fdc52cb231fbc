package bloodtype

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("accepts every canonical type", func(t *testing.T) {
		for _, want := range All {
			got, err := Parse(string(want))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("ignores case and surrounding whitespace", func(t *testing.T) {
		got, err := Parse("  ab- ")
		require.NoError(t, err)
		assert.Equal(t, ABNegative, got)

		got, err = Parse("o+")
		require.NoError(t, err)
		assert.Equal(t, OPositive, got)
	})

	t.Run("rejects values outside the closed set", func(t *testing.T) {
		for _, input := range []string{"", "X+", "A", "+", "AB", "A+ +", "ABO+", "0-", "A–"} {
			_, err := Parse(input)
			require.Error(t, err, "input %q", input)

			var invalid *InvalidBloodTypeError
			require.True(t, errors.As(err, &invalid), "input %q", input)
			assert.Equal(t, input, invalid.Value)
		}
	})

	t.Run("error message names the offending value", func(t *testing.T) {
		_, err := Parse("Q-")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"Q-"`)
		assert.Contains(t, err.Error(), "A+, A-, B+, B-, AB+, AB-, O+, O-")
	})
}

func TestDecomposition(t *testing.T) {
	cases := map[BloodType][2]string{
		APositive:  {"A", "+"},
		ANegative:  {"A", "-"},
		BPositive:  {"B", "+"},
		BNegative:  {"B", "-"},
		ABPositive: {"AB", "+"},
		ABNegative: {"AB", "-"},
		OPositive:  {"O", "+"},
		ONegative:  {"O", "-"},
	}
	for bt, want := range cases {
		assert.Equal(t, ABO(want[0]), bt.ABO(), "abo of %s", bt)
		assert.Equal(t, Rh(want[1]), bt.Rh(), "rh of %s", bt)
	}
	assert.Len(t, All, 8)
	assert.False(t, BloodType("").IsValid())
	assert.Equal(t, ABO(""), BloodType("").ABO())
}
