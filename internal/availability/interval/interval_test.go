package interval

import (
	"testing"
	"time"

	"hotelops/pkg/model"
)

func mkInterval(startOffset, endOffset time.Duration) model.Interval {
	base := time.Date(2026, time.January, 10, 14, 0, 0, 0, time.UTC)
	return model.Interval{
		Start: base.Add(startOffset),
		End:   base.Add(endOffset),
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid(mkInterval(0, time.Hour)) {
		t.Error("expected positive-length interval to be valid")
	}
	if IsValid(mkInterval(0, 0)) {
		t.Error("expected zero-length interval to be invalid")
	}
	if IsValid(mkInterval(time.Hour, 0)) {
		t.Error("expected inverted interval to be invalid")
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b model.Interval
		want bool
	}{
		{"identical", mkInterval(0, time.Hour), mkInterval(0, time.Hour), true},
		{"partial tail", mkInterval(0, 2*time.Hour), mkInterval(time.Hour, 3*time.Hour), true},
		{"contained", mkInterval(0, 4*time.Hour), mkInterval(time.Hour, 2*time.Hour), true},
		{"disjoint", mkInterval(0, time.Hour), mkInterval(2*time.Hour, 3*time.Hour), false},
		{"touching boundary", mkInterval(0, time.Hour), mkInterval(time.Hour, 2*time.Hour), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.a, tc.b); got != tc.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	pairs := [][2]model.Interval{
		{mkInterval(0, time.Hour), mkInterval(30*time.Minute, 2*time.Hour)},
		{mkInterval(0, time.Hour), mkInterval(time.Hour, 2*time.Hour)},
		{mkInterval(0, time.Hour), mkInterval(5*time.Hour, 6*time.Hour)},
		{mkInterval(0, 10*time.Hour), mkInterval(time.Hour, 2*time.Hour)},
	}

	for _, p := range pairs {
		if Overlaps(p[0], p[1]) != Overlaps(p[1], p[0]) {
			t.Errorf("Overlaps is not symmetric for %v and %v", p[0], p[1])
		}
	}
}

func TestBoundaryTouchNeverOverlaps(t *testing.T) {
	// [s, e) followed by [e, e+1h): the shared instant belongs only to the
	// second interval.
	for _, length := range []time.Duration{time.Minute, time.Hour, 72 * time.Hour} {
		a := mkInterval(0, length)
		b := model.Interval{Start: a.End, End: a.End.Add(time.Hour)}
		if Overlaps(a, b) {
			t.Errorf("intervals touching at %v must not overlap", a.End)
		}
	}
}

func TestContains(t *testing.T) {
	i := mkInterval(0, time.Hour)

	if !Contains(i, i.Start) {
		t.Error("interval must contain its start")
	}
	if Contains(i, i.End) {
		t.Error("interval must not contain its end")
	}
	if !Contains(i, i.Start.Add(30*time.Minute)) {
		t.Error("interval must contain its midpoint")
	}
}

func TestDuration(t *testing.T) {
	if got := Duration(mkInterval(0, 90*time.Minute)); got != 90*time.Minute {
		t.Errorf("Duration = %v, want 90m", got)
	}
}
