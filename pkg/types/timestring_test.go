package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "zero padded", input: "09:30", want: "09:30"},
		{name: "single digit hour", input: "9:05", want: "09:05"},
		{name: "end of day", input: "23:59", want: "23:59"},
		{name: "hour overflow", input: "24:00", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	_, err = TimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)

	_, err = TimeString("bad").AddMinutes(5)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("18:00").IsAfter("09:00"))
	assert.True(t, TimeString("09:00").Between("09:00", "18:00"))
	assert.True(t, TimeString("18:00").Between("09:00", "18:00"))
	assert.False(t, TimeString("08:59").Between("09:00", "18:00"))
	assert.Equal(t, 9*60+15, TimeString("09:15").Minutes())
	assert.Equal(t, -1, TimeString("xx").Minutes())
}

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("07:00").Validate())
	assert.Error(t, TimeString("7:00").Validate())
	assert.True(t, TimeString("").IsZero())
}
