package manad

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1.500,50", want: "1500.5"},
		{in: "1500,50", want: "1500.5"},
		{in: "0,01", want: "0.01"},
		{in: "1.234.567,89", want: "1234567.89"},
		{in: "-25,00", want: "-25"},
		{in: " 100,00 ", want: "100"},
		{in: "100", want: "100"},
		{in: "100.25", want: "100.25"},
		{in: "", wantErr: true},
		{in: "   ", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1,2,3", wantErr: true},
		{in: "R$ 10,00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestCategoryNumber(t *testing.T) {
	n, err := CategoryNumber("0100")
	require.NoError(t, err)
	assert.Equal(t, int64(100), n)

	n, err = CategoryNumber("7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	_, err = CategoryNumber("A10")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNonNumericCategoryCode))

	var nonNumeric *NonNumericCategoryCodeError
	require.True(t, errors.As(err, &nonNumeric))
	assert.Equal(t, "A10", nonNumeric.Code)

	_, err = CategoryNumber("")
	assert.ErrorIs(t, err, ErrNonNumericCategoryCode)
}

func TestCanonicalCode(t *testing.T) {
	key, ok := canonicalCode("000123")
	assert.True(t, ok)
	assert.Equal(t, "123", key)

	key, ok = canonicalCode("0000")
	assert.True(t, ok)
	assert.Equal(t, "0", key)

	_, ok = canonicalCode("X1")
	assert.False(t, ok)
}
