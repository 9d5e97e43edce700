package layout

import (
	"testing"

	"github.com/matzehuels/mindmap/pkg/errors"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		want    Direction
		wantErr bool
	}{
		{"", DirectionBoth, false},
		{"both", DirectionBoth, false},
		{"left", DirectionLeft, false},
		{" Right ", DirectionRight, false},
		{"up", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDirection(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidDirection) {
			t.Errorf("ParseDirection(%q) code = %v", tt.input, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := DefaultOptions()
	want := Options{
		Direction:              DirectionBoth,
		HorizontalSpacing:      140,
		VerticalSpacing:        18,
		LevelSpacingMultiplier: 1,
	}
	if o != want {
		t.Errorf("DefaultOptions() = %+v, want %+v", o, want)
	}

	custom := Options{Direction: "LEFT", VerticalSpacing: 16, CenterOffset: -5}
	custom.SetDefaults()
	if custom.Direction != DirectionLeft || custom.VerticalSpacing != 16 || custom.CenterOffset != -5 {
		t.Errorf("SetDefaults() = %+v", custom)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{"zero", Options{}, ""},
		{"defaults", DefaultOptions(), ""},
		{"bad direction", Options{Direction: "diagonal"}, errors.ErrCodeInvalidDirection},
		{"negative horizontal", Options{HorizontalSpacing: -1}, errors.ErrCodeInvalidOption},
		{"negative vertical", Options{VerticalSpacing: -1}, errors.ErrCodeInvalidOption},
		{"negative multiplier", Options{LevelSpacingMultiplier: -1}, errors.ErrCodeInvalidOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("Validate() code = %q, want %q (err %v)", got, tt.wantCode, err)
			}
		})
	}
}
