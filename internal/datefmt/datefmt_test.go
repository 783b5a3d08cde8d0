package datefmt

import (
	"testing"
	"time"
)

func TestIsValidDisplayDate(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"25/12/2024", true},
		{"29/02/2024", true},
		{"29/02/2023", false},
		{"31/04/2024", false},
		{"30/04/2024", true},
		{"01/01/1900", true},
		{"31/12/2100", true},
		{"31/12/1899", false},
		{"01/01/2101", false},
		{"00/01/2024", false},
		{"01/13/2024", false},
		{"01/00/2024", false},
		{"1/1/2024", false},
		{"2024-12-25", false},
		{"aa/bb/cccc", false},
		{"", false},
		{"25/12/20244", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := IsValidDisplayDate(tt.in); got != tt.want {
				t.Errorf("IsValidDisplayDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToStorageForm(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"valid", "25/12/2024", "2024-12-25"},
		{"pads day and month", "5/3/2024", "2024-03-05"},
		{"empty", "", ""},
		{"two parts", "25/12", ""},
		{"four parts", "25/12/2024/1", ""},
		{"empty day", "/12/2024", ""},
		{"empty year", "25/12/", ""},
		{"non-numeric month", "25/xx/2024", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ToStorageForm(tt.in); got != tt.want {
				t.Errorf("ToStorageForm(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToDisplayForm(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"valid", "2024-12-25", "25/12/2024"},
		{"pads day and month", "2024-3-5", "05/03/2024"},
		{"empty", "", ""},
		{"not three parts returned unchanged", "25/12/2024", "25/12/2024"},
		{"non-numeric returned unchanged", "2024-ab-cd", "2024-ab-cd"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ToDisplayForm(tt.in); got != tt.want {
				t.Errorf("ToDisplayForm(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Run("display to storage and back", func(t *testing.T) {
		t.Parallel()
		for _, d := range []string{"01/01/1900", "29/02/2024", "31/12/2100", "15/07/1987"} {
			if !IsValidDisplayDate(d) {
				t.Fatalf("%s should be valid", d)
			}
			if got := ToDisplayForm(ToStorageForm(d)); got != d {
				t.Errorf("round trip of %s gave %s", d, got)
			}
		}
	})

	t.Run("storage to display and back", func(t *testing.T) {
		t.Parallel()
		for _, s := range []string{"1900-01-01", "2024-02-29", "2100-12-31"} {
			if got := ToStorageForm(ToDisplayForm(s)); got != s {
				t.Errorf("round trip of %s gave %s", s, got)
			}
		}
	})

	t.Run("every day of a leap year", func(t *testing.T) {
		t.Parallel()
		day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		for day.Year() == 2024 {
			d := day.Format("02/01/2006")
			if !IsValidDisplayDate(d) {
				t.Fatalf("%s should be valid", d)
			}
			if got := ToStorageForm(d); got != DateKey(day) {
				t.Fatalf("ToStorageForm(%s) = %s, want %s", d, got, DateKey(day))
			}
			day = day.AddDate(0, 0, 1)
		}
	})
}

func TestParseDisplayDate(t *testing.T) {
	t.Run("single digit parts", func(t *testing.T) {
		t.Parallel()
		got, ok := ParseDisplayDate("5/3/2025")
		if !ok {
			t.Fatal("expected date to parse")
		}
		if DateKey(got) != "2025-03-05" {
			t.Errorf("expected 2025-03-05, got %s", DateKey(got))
		}
	})

	t.Run("overflowing day rolls over", func(t *testing.T) {
		t.Parallel()
		got, ok := ParseDisplayDate("32/01/2025")
		if !ok {
			t.Fatal("expected date to parse")
		}
		if DateKey(got) != "2025-02-01" {
			t.Errorf("expected 2025-02-01, got %s", DateKey(got))
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		t.Parallel()
		for _, s := range []string{"", "2025-01-01", "a/b/c", "12/2025"} {
			if _, ok := ParseDisplayDate(s); ok {
				t.Errorf("expected %q to be rejected", s)
			}
		}
	})
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tt := range tests {
		tt := tt
		if got := DaysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysIn(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestNormalizeAndPickerValue(t *testing.T) {
	if got := Normalize("2024-12-25"); got != "25/12/2024" {
		t.Errorf("Normalize(storage form) = %q", got)
	}
	if got := Normalize("25/12/2024"); got != "25/12/2024" {
		t.Errorf("Normalize(display form) = %q", got)
	}
	if got := PickerValue("25/12/2024"); got != "2024-12-25" {
		t.Errorf("PickerValue(display form) = %q", got)
	}
	if got := PickerValue("2024-12-25"); got != "2024-12-25" {
		t.Errorf("PickerValue(storage form) = %q", got)
	}
	if Normalize("") != "" || PickerValue("") != "" {
		t.Error("empty values should stay empty")
	}
}

func TestTodayKey(t *testing.T) {
	now := time.Date(2025, 3, 14, 23, 30, 0, 0, time.Local)
	if got := TodayKey(now); got != "2025-03-14" {
		t.Errorf("TodayKey(local) = %q", got)
	}
	if got := TodayKey(now.UTC()); got != "2025-03-14" {
		t.Errorf("TodayKey(same instant in UTC) = %q, want local date", got)
	}
}
