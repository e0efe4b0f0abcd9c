package alphabet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	a := New()
	assert.Equal(t, 32, a.Len())
	assert.Equal(t, Russian, a.String())

	first, err := a.Symbol(0)
	require.NoError(t, err)
	assert.Equal(t, 'а', first)

	last, err := a.Symbol(31)
	require.NoError(t, err)
	assert.Equal(t, 'я', last)
}

func TestIndexSymbolInverse(t *testing.T) {
	a := New()
	for i := 0; i < a.Len(); i++ {
		r, err := a.Symbol(i)
		require.NoError(t, err)
		j, err := a.Index(r)
		require.NoError(t, err)
		assert.Equal(t, i, j)
	}
}

func TestErrors(t *testing.T) {
	a := New()

	t.Run("IndexUnknown", func(t *testing.T) {
		_, err := a.Index('o') // latin o
		assert.ErrorIs(t, err, ErrInvalidText)
	})

	t.Run("SymbolOutOfRange", func(t *testing.T) {
		_, err := a.Symbol(32)
		assert.ErrorIs(t, err, ErrInvalidIndex)
		_, err = a.Symbol(-1)
		assert.ErrorIs(t, err, ErrInvalidIndex)
	})

	t.Run("Validate", func(t *testing.T) {
		assert.NoError(t, a.Validate("отодногопорченогояблокавесьвоззагниваеттчк"))
		assert.ErrorIs(t, a.Validate("отод no"), ErrInvalidText)
	})

	t.Run("ValidatePhraseEmpty", func(t *testing.T) {
		err := a.ValidatePhrase("phrase", "")
		require.ErrorIs(t, err, ErrEmptyValue)

		var empty *EmptyValueError
		require.True(t, errors.As(err, &empty))
		assert.Equal(t, "phrase", empty.Field)
		assert.Equal(t, "phrase is missing", err.Error())
	})
}

func TestValues(t *testing.T) {
	values, err := New().Values("отодно")
	require.NoError(t, err)
	assert.Equal(t, []int{15, 19, 15, 5, 14, 15}, values)

	_, err = New().Values("abc")
	assert.ErrorIs(t, err, ErrInvalidText)
}

func TestFromString(t *testing.T) {
	a, err := FromString("ая")
	require.NoError(t, err)
	assert.Equal(t, 2, a.Len())

	_, err = FromString("")
	assert.ErrorIs(t, err, ErrEmptyValue)

	_, err = FromString("абa")
	assert.NoError(t, err) // cyrillic а and latin a are distinct

	_, err = FromString("аба")
	assert.Error(t, err)
}
