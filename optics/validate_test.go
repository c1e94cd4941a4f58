package optics_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gosymbol "github.com/njchilds90/matrixoptics"
	"github.com/njchilds90/matrixoptics/optics"
)

func TestValidateSymbol_RejectsNonExpression(t *testing.T) {
	for _, v := range []any{1, 2.5, "z", nil, (*gosymbol.Sym)(nil), (*gosymbol.Num)(nil)} {
		err := optics.ValidateSymbol(v, "z")
		require.Error(t, err)
		assert.ErrorIs(t, err, optics.ErrType)
	}
}

func TestValidateSymbol_TypeCheckedBeforeRole(t *testing.T) {
	err := optics.ValidateSymbol(1, "a")
	assert.ErrorIs(t, err, optics.ErrType)
}

func TestValidateSymbol_Roles(t *testing.T) {
	cases := []struct {
		role string
		want string // "real" or "positive"
	}{
		{"z", "real"},
		{"R", "real"},
		{"w", "positive"},
		{"w0", "positive"},
		{"zR", "positive"},
		{"wavelength", "positive"},
		{"lambda0", "positive"},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			plain := gosymbol.S(tc.role)
			err := optics.ValidateSymbol(plain, tc.role)
			require.ErrorIs(t, err, optics.ErrAssumption)

			var ve *optics.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.role, ve.Variable)
			assert.Equal(t, tc.want, ve.Want)
			assert.Contains(t, err.Error(), "explicitly "+tc.want)

			positive := gosymbol.S(tc.role, gosymbol.Positive)
			assert.NoError(t, optics.ValidateSymbol(positive, tc.role))

			realOnly := gosymbol.S(tc.role, gosymbol.Real)
			if tc.want == "real" {
				assert.NoError(t, optics.ValidateSymbol(realOnly, tc.role))
			} else {
				assert.ErrorIs(t, optics.ValidateSymbol(realOnly, tc.role), optics.ErrAssumption)
			}
		})
	}
}

func TestValidateSymbol_UnknownVariable(t *testing.T) {
	zR := gosymbol.S("zR", gosymbol.Positive)
	err := optics.ValidateSymbol(zR, "a")
	require.ErrorIs(t, err, optics.ErrUnknownVariable)

	var ve *optics.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "a", ve.Variable)
}

func TestValidateSymbol_Expressions(t *testing.T) {
	z := gosymbol.S("z", gosymbol.Real)
	w0 := gosymbol.S("w0", gosymbol.Positive)

	// Compound expressions are accepted when the assumption is provable.
	assert.NoError(t, optics.ValidateSymbol(gosymbol.AddOf(z, gosymbol.N(3)), "z"))
	assert.NoError(t, optics.ValidateSymbol(gosymbol.MulOf(gosymbol.Pi, gosymbol.PowOf(w0, gosymbol.N(2))), "wavelength"))
	assert.NoError(t, optics.ValidateSymbol(gosymbol.N(0), "z"))
	assert.ErrorIs(t, optics.ValidateSymbol(gosymbol.Neg(w0), "w0"), optics.ErrAssumption)
	assert.ErrorIs(t, optics.ValidateSymbol(gosymbol.MulOf(gosymbol.I, z), "z"), optics.ErrAssumption)
}
