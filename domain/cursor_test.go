package domain

import (
	"chat-feed/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCursor(t *testing.T) {
	tests := []struct {
		raw     string
		want    Cursor
		wantErr bool
	}{
		{raw: "", want: Now},
		{raw: "now", want: Now},
		{raw: " NOW ", want: Now},
		{raw: "0", want: After(0)},
		{raw: "42", want: After(42)},
		{raw: "-1", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "1.5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			req := require.New(t)
			got, err := ParseCursor(tt.raw)
			if tt.wantErr {
				req.ErrorIs(err, errors.ErrValidation)
				return
			}
			req.NoError(err)
			req.Equal(tt.want, got)
		})
	}
}

func TestCursor_String_Round_Trips(t *testing.T) {
	req := require.New(t)
	for _, c := range []Cursor{Now, After(0), After(18446744073709551615)} {
		parsed, err := ParseCursor(c.String())
		req.NoError(err)
		req.Equal(c, parsed)
	}
}

func TestCursor_Zero_Value_Is_Start_Of_Log(t *testing.T) {
	req := require.New(t)
	var c Cursor
	req.False(c.IsNow())
	req.Zero(c.Seq())
}
