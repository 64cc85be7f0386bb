package date

import (
	"flag"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, time.July, 1)},
		{in: "2025-7-1", want: New(2025, time.July, 1)},
		{in: "2025-13-1", wantErr: true},
		{in: "yesterday", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := Parse(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNew_Normalizes(t *testing.T) {
	if got, want := New(2025, time.January, 32), New(2025, time.February, 1); got != want {
		t.Errorf("New(2025, 1, 32) = %v, want %v", got, want)
	}
	if got, want := New(2024, time.December, 31).Add(1).String(), "2025-01-01"; got != want {
		t.Errorf("Add(1) = %v, want %v", got, want)
	}
}

func TestEndOfDay(t *testing.T) {
	d := New(2025, time.March, 9)
	end := d.EndOfDay(time.UTC)
	if late := time.Date(2025, time.March, 9, 23, 59, 59, 0, time.UTC); late.After(end) {
		t.Errorf("EndOfDay() = %v is before %v", end, late)
	}
	if next := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC); !next.After(end) {
		t.Errorf("EndOfDay() = %v is not before %v", end, next)
	}
}

func TestDate_Flag(t *testing.T) {
	var d Date
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&d, "d", "date")
	if err := fs.Parse([]string{"-d", "2025-2-3"}); err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if got, want := d, New(2025, time.February, 3); got != want {
		t.Errorf("-d = %v, want %v", got, want)
	}
	if d.IsZero() {
		t.Error("IsZero() = true after setting the flag")
	}
}
