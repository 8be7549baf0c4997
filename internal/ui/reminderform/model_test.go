package reminderform

import "testing"

func TestValidateDate(t *testing.T) {
	cases := []struct {
		input string
		ok    bool
	}{
		{"2030-01-01", true},
		{"  2030-01-01  ", true},
		{"", false},
		{"   ", false},
		{"01/01/2030", false},
		{"2030-13-01", false},
		{"2030-02-30", false},
	}

	for _, tc := range cases {
		err := validateDate(tc.input)
		if tc.ok && err != nil {
			t.Errorf("validateDate(%q) = %v, want nil", tc.input, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("validateDate(%q) = nil, want error", tc.input)
		}
	}
}

func TestValidateTime(t *testing.T) {
	cases := []struct {
		input string
		ok    bool
	}{
		{"09:00:00", true},
		{"23:59:59", true},
		{"", false},
		{"9am", false},
		{"09:00", false},
		{"25:00:00", false},
	}

	for _, tc := range cases {
		err := validateTime(tc.input)
		if tc.ok && err != nil {
			t.Errorf("validateTime(%q) = %v, want nil", tc.input, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("validateTime(%q) = nil, want error", tc.input)
		}
	}
}

func TestValidateRequired(t *testing.T) {
	v := validateRequired("Text")
	if err := v("Pay rent"); err != nil {
		t.Errorf("non-empty value rejected: %v", err)
	}
	if err := v("   "); err == nil {
		t.Error("blank value accepted")
	}
}

func TestClearResetsBindings(t *testing.T) {
	m := New(80, 24)
	m.fb.date = "2030-01-01"
	m.fb.time = "09:00:00"
	m.fb.text = "Pay rent"

	m.Clear()

	if m.fb.date != "" || m.fb.time != "" || m.fb.text != "" {
		t.Fatalf("clear left values behind: %+v", m.fb)
	}
}
