package parser

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser() *Parser {
	p := NewParser(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return p
}

func TestNewParser(t *testing.T) {
	p := newTestParser()
	require.NotNil(t, p)
}

func TestParseIntFromFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"integer", "32", 32, false},
		{"zero", "0", 0, false},
		{"negative integer", "-1", -1, false},
		{"float with decimals", "32.00", 32, false},
		{"negative float", "-1.00", -1, false},
		{"large integer", "65535", 65535, false},
		{"fractional rejects", "10.99", 0, true},
		{"empty string", "", 0, true},
		{"non-numeric", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIntFromFloat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}


func TestFieldError(t *testing.T) {
	inner := errors.New("bad number")
	err := error(&FieldError{Command: ":FRAME:", Index: 7, Field: "altitude", Err: inner})

	assert.Equal(t, ":FRAME: arg 7 (altitude): bad number", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestParseFields_TooFewArgs(t *testing.T) {
	p := newTestParser()
	_, err := p.ParseOrbit([]string{"Kerbin", "600000"})
	require.ErrorIs(t, err, ErrArgCount)
	assert.Contains(t, err.Error(), "got 2, want 17")
}
