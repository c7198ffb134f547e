package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{name: "single digit hour", input: "9:00", want: MustTimeOfDay(9, 0)},
		{name: "two digit hour", input: "14:30", want: MustTimeOfDay(14, 30)},
		{name: "leading zero", input: "08:05", want: MustTimeOfDay(8, 5)},
		{name: "midnight", input: "0:00", want: MustTimeOfDay(0, 0)},
		{name: "last minute", input: "23:59", want: MustTimeOfDay(23, 59)},
		{name: "hour 24", input: "24:00", wantErr: true},
		{name: "minute 60", input: "10:60", wantErr: true},
		{name: "single minute digit", input: "10:5", wantErr: true},
		{name: "three hour digits", input: "100:00", wantErr: true},
		{name: "no colon", input: "1000", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "trailing text", input: "10:00am", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				var ite *InvalidTimeError
				require.Error(t, err)
				assert.True(t, errors.As(err, &ite), "expected InvalidTimeError, got %T", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTimeOfDay_Range(t *testing.T) {
	for _, c := range [][2]int{{-1, 0}, {24, 0}, {0, -1}, {0, 60}} {
		_, err := NewTimeOfDay(c[0], c[1])
		var ite *InvalidTimeError
		assert.True(t, errors.As(err, &ite), "NewTimeOfDay(%d, %d) should fail", c[0], c[1])
	}
}

func TestFraction_StrictlyIncreasing(t *testing.T) {
	prev := -1.0
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			f := MustTimeOfDay(h, m).Fraction()
			if f <= prev {
				t.Fatalf("fraction not increasing at %d:%02d: %f <= %f", h, m, f, prev)
			}
			prev = f
		}
	}
}

func TestTimeOfDay_Compare(t *testing.T) {
	nine, ten := MustTimeOfDay(9, 0), MustTimeOfDay(10, 0)

	assert.True(t, ten.IsAtOrAfter(nine))
	assert.True(t, ten.IsAtOrAfter(ten))
	assert.False(t, nine.IsAtOrAfter(ten))

	assert.True(t, ten.After(nine))
	assert.False(t, ten.After(ten))
	assert.Equal(t, 15.5, MustTimeOfDay(15, 30).Fraction())
}

func TestTimeOfDay_Format(t *testing.T) {
	assert.Equal(t, "9:05", MustTimeOfDay(9, 5).String())
	assert.Equal(t, "090500", MustTimeOfDay(9, 5).ICal())
	assert.Equal(t, "183000", MustTimeOfDay(18, 30).ICal())
}

func TestTimeOfDay_JSON(t *testing.T) {
	b, err := json.Marshal(MustTimeOfDay(8, 30))
	require.NoError(t, err)
	assert.Equal(t, `"8:30"`, string(b))

	var got TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`"13:45"`), &got))
	assert.Equal(t, MustTimeOfDay(13, 45), got)

	assert.Error(t, json.Unmarshal([]byte(`"25:00"`), &got))
}
