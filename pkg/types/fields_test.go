package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Name
		wantErr bool
	}{
		{name: "plain name", in: "Alice Tan", want: "Alice Tan"},
		{name: "trimmed", in: "  Bob  ", want: "Bob"},
		{name: "apostrophe and hyphen", in: "Mary-Jane O'Brien", want: "Mary-Jane O'Brien"},
		{name: "slash and at", in: "Raj s/o Kumar", want: "Raj s/o Kumar"},
		{name: "digits", in: "Life 2", want: "Life 2"},
		{name: "empty", in: "", wantErr: true},
		{name: "blank", in: "   ", wantErr: true},
		{name: "leading punctuation", in: "-Alice", wantErr: true},
		{name: "illegal character", in: "Alice*", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseName(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				assert.Equal(t, MessageName, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePhone(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "91234567"},
		{in: "123"},
		{in: "12", wantErr: true},
		{in: "+6591234567", wantErr: true},
		{in: "9123 4567", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParsePhone(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseNationalID(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    NationalID
		wantErr bool
	}{
		{name: "upper case", in: "S1234567A", want: "S1234567A"},
		{name: "lower case normalized", in: "t7654321z", want: "T7654321Z"},
		{name: "each prefix", in: "M0000000X", want: "M0000000X"},
		{name: "unknown prefix", in: "A1234567B", wantErr: true},
		{name: "too few digits", in: "S123456A", wantErr: true},
		{name: "missing checksum", in: "S1234567", wantErr: true},
		{name: "digit checksum", in: "S12345678", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNationalID(tt.in)
			if tt.wantErr {
				var ve *ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, FieldNationalID, ve.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEmail(t *testing.T) {
	_, err := ParseEmail("alice@example.com")
	assert.NoError(t, err)

	for _, in := range []string{"", "alice", "alice@", "@example.com", "alice example@x.com"} {
		_, err := ParseEmail(in)
		assert.ErrorIs(t, err, ErrValidation, "input %q", in)
	}
}

func TestParseTags(t *testing.T) {
	tags, err := ParseTags([]string{"vip", "friend", "vip"})
	require.NoError(t, err)
	assert.Equal(t, []Tag{"friend", "vip"}, tags)

	tags, err = ParseTags(nil)
	require.NoError(t, err)
	assert.Empty(t, tags)

	_, err = ParseTags([]string{"ok", "not ok"})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, FieldTags, ve.Field)
}

func TestParseAppointmentDetails(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "printable", in: "Annual review @ 3pm (office)"},
		{name: "blank", in: "  ", wantErr: true},
		{name: "non ascii", in: "Café meeting", wantErr: true},
		{name: "control character", in: "line\tbreak", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAppointmentDetails(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseIDs(t *testing.T) {
	id, err := ParsePolicyID("ABC123")
	require.NoError(t, err)
	assert.Equal(t, PolicyID("ABC123"), id)

	_, err = ParseContractID("ABC12")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseAppointmentID("ABC-12")
	assert.ErrorIs(t, err, ErrValidation)

	set, err := ParseContractIDs([]string{"ZZZ999", "AAA111", "ZZZ999"})
	require.NoError(t, err)
	assert.Equal(t, []ContractID{"AAA111", "ZZZ999"}, set)
}
