package ingest

import "testing"

func TestIsCentFormatted(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"1050", true},
		{"-1050", true},
		{"10.50", false},
		{"$10.50", false},
		{"USD 10", false},
		{"$1050", false},
		{"", false},
		{"  ", false},
	}
	for _, tc := range cases {
		if got := IsCentFormatted(tc.in); got != tc.want {
			t.Fatalf("IsCentFormatted(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeAmountCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1050", 1050},
		{"$10.50", 1050},
		{"10.50", 1050},
		{"10.5", 1050},
		{"USD 10", 1000},
		{"USD 10.25", 1025},
		{"-10.00", -1000},
		{"-1050", -1050},
		{"$0.01", 1},
	}
	for _, tc := range cases {
		got, err := NormalizeAmountCents(tc.in)
		if err != nil {
			t.Fatalf("NormalizeAmountCents(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizeAmountCents(%q)=%d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeAmountCents_Rejects(t *testing.T) {
	cases := []string{"", "   ", "$", "USD", "10.505", "$1.2345"}
	for _, in := range cases {
		if _, err := NormalizeAmountCents(in); err == nil {
			t.Fatalf("NormalizeAmountCents(%q) should fail", in)
		}
	}
}

func TestIsTestFlagged(t *testing.T) {
	if !IsTestFlagged([]string{"priority", "TEST"}) {
		t.Fatal("TEST flag not detected")
	}
	if !IsTestFlagged([]string{"sandbox"}) {
		t.Fatal("sandbox flag not detected")
	}
	if IsTestFlagged([]string{"normal"}) {
		t.Fatal("normal flag misdetected as test")
	}
	if IsTestFlagged(nil) {
		t.Fatal("nil flags misdetected as test")
	}
}
