package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/cocreate/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsername(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"ok", "alice1", nil},
		{"ok upper", "Alice1", nil},
		{"min length", "abc", nil},
		{"max length", strings.Repeat("a", 20), nil},
		{"empty", "", ErrEmpty},
		{"blank", "   ", ErrEmpty},
		{"too short", "ab", ErrLengthOutOfRange},
		{"too long", strings.Repeat("a", 21), ErrLengthOutOfRange},
		{"underscore", "alice_1", ErrNotAlphanumeric},
		{"space", "ali ce", ErrNotAlphanumeric},
		{"non ascii letter", "alicé", ErrNotAlphanumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Username(tt.in)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, common.KindValidation, common.KindOf(err))
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
		msg  string
	}{
		{"ok", "Passw0rd", nil, ""},
		{"max length", strings.Repeat("a", 79) + "1", nil, ""},
		{"empty", "", ErrEmpty, "Password cannot be empty."},
		{"seven chars", "short1x", ErrLengthOutOfRange, "Password must be at least 8 characters long."},
		{"too long", strings.Repeat("a", 80) + "1", ErrLengthOutOfRange, "Password must be at most 80 characters long."},
		{"no digit", "Password", ErrMissingDigit, "Password must contain at least one digit."},
		{"no letter", "12345678", ErrMissingLetter, "Password must contain at least one letter."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password(tt.in)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)

			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, "password", fe.Field)
			assert.Equal(t, tt.msg, err.Error())
			assert.Equal(t, tt.msg, common.PublicMessage(err))
		})
	}
}
