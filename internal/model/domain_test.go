package model

import (
	"testing"

	"pgregory.net/rapid"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:30", want: 9*60 + 30},
		{in: "23:59", want: 23*60 + 59},
		{in: "24:00", wantErr: true},
		{in: "9:30am", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTimeOfDayRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		minutes := rapid.IntRange(0, 24*60-1).Draw(t, "minutes")
		tod := TimeOfDay(minutes)

		parsed, err := ParseTimeOfDay(tod.String())
		if err != nil {
			t.Fatalf("parsing %q: %v", tod.String(), err)
		}
		if parsed != tod {
			t.Fatalf("round trip: %d -> %q -> %d", tod, tod.String(), parsed)
		}
	})
}

func TestFillRatio(t *testing.T) {
	tests := []struct {
		name  string
		shift Shift
		want  float64
	}{
		{name: "half full", shift: Shift{MaxVolunteers: 4, CurrentVolunteers: 2}, want: 0.5},
		{name: "empty", shift: Shift{MaxVolunteers: 4}, want: 0},
		{name: "no capacity", shift: Shift{CurrentVolunteers: 3}, want: 0},
		{name: "negative capacity", shift: Shift{MaxVolunteers: -1, CurrentVolunteers: 3}, want: 0},
		{name: "overfull", shift: Shift{MaxVolunteers: 2, CurrentVolunteers: 3}, want: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shift.FillRatio(); got != tt.want {
				t.Errorf("FillRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShiftByID(t *testing.T) {
	snap := &Snapshot{Shifts: []Shift{{ID: "s1"}, {ID: "s2"}}}

	if sh, ok := snap.ShiftByID("s2"); !ok || sh.ID != "s2" {
		t.Errorf("ShiftByID(s2) = %+v, %v", sh, ok)
	}
	if _, ok := snap.ShiftByID("missing"); ok {
		t.Error("ShiftByID(missing) reported a hit")
	}
}
