package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidMonthKey(t *testing.T) {
	valid := []string{"2025-01", "2025-12", "1999-06", "2030-09"}
	invalid := []string{
		"2025-13", // month out of range
		"2025-00",
		"2025-1",   // missing zero padding
		"25-01",    // short year
		"2025/01",  // wrong separator
		"2025-01-", // trailing garbage
		" 2025-01",
		"",
		"january",
	}
	for _, m := range valid {
		if !IsValidMonthKey(m) {
			t.Errorf("IsValidMonthKey(%q) = false, want true", m)
		}
	}
	for _, m := range invalid {
		if IsValidMonthKey(m) {
			t.Errorf("IsValidMonthKey(%q) = true, want false", m)
		}
	}
}

func TestMonthBounds(t *testing.T) {
	cases := []struct {
		month     string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"2025-01", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-12", time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-02", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		start, end := MonthBounds(c.month)
		if !start.Equal(c.wantStart) || !end.Equal(c.wantEnd) {
			t.Errorf("MonthBounds(%q) = (%v, %v), want (%v, %v)", c.month, start, end, c.wantStart, c.wantEnd)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "01-01-2023", "not-a-date", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidCardLastFour(t *testing.T) {
	valid := []string{"0000", "1234", "9999"}
	invalid := []string{"123", "12345", "12a4", "", "-123"}
	for _, s := range valid {
		if !IsValidCardLastFour(s) {
			t.Errorf("IsValidCardLastFour(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidCardLastFour(s) {
			t.Errorf("IsValidCardLastFour(%q) = true, want false", s)
		}
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "month", Message: "must match YYYY-MM"},
		{Field: "amount", Message: "must be non-negative"},
	}
	m := errs.ToMap()
	if len(m) != 2 {
		t.Fatalf("ToMap() returned %d entries, want 2", len(m))
	}
	if m["month"] != "must match YYYY-MM" {
		t.Errorf("ToMap()[month] = %q", m["month"])
	}
	if errs.Error() == "" {
		t.Error("Error() should not be empty")
	}
}
