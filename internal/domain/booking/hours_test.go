package booking

import (
	"testing"
	"time"
)

func TestDefaultBusinessHours(t *testing.T) {
	hours := DefaultBusinessHours()

	if _, open := hours.HoursFor(time.Sunday); open {
		t.Error("Sunday should be closed")
	}

	for day := time.Monday; day <= time.Friday; day++ {
		dh, open := hours.HoursFor(day)
		if !open {
			t.Errorf("%v should be open", day)
			continue
		}
		if dh.Open != 9 || dh.Close != 19 {
			t.Errorf("%v = %d-%d, want 9-19", day, dh.Open, dh.Close)
		}
	}

	sat, open := hours.HoursFor(time.Saturday)
	if !open || sat.Open != 9 || sat.Close != 14 {
		t.Errorf("Saturday = %+v (open=%v), want 9-14", sat, open)
	}
}

func TestDefaultBusinessHoursIsACopy(t *testing.T) {
	a := DefaultBusinessHours()
	a[time.Sunday] = DayHours{Open: 8, Close: 20}

	if _, open := DefaultBusinessHours().HoursFor(time.Sunday); open {
		t.Error("mutating one copy must not leak into the default configuration")
	}
}

func TestDayHoursWindow(t *testing.T) {
	w := DayHours{Open: 9, Close: 14}.Window()
	if w.Start != NewClock(9, 0) || w.End != NewClock(14, 0) {
		t.Errorf("Window() = %v-%v, want 09:00-14:00", w.Start, w.End)
	}
}
