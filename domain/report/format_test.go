package report

import "testing"

func TestFormatPValue(t *testing.T) {
	cases := []struct {
		p    float64
		want string
	}{
		{0.00001, "1.00e-05"},
		{0.0005, "5.00e-04"},
		{0.0321, "0.0321"},
		{0.999, "0.9990"},
		{0.001, "0.0010"},
		{0.0009999, "1.00e-03"},
		{1.0, "1.0000"},
		{0.0, "0.00e+00"},
	}
	for _, tc := range cases {
		if got := FormatPValue(tc.p); got != tc.want {
			t.Errorf("FormatPValue(%g) = %q, want %q", tc.p, got, tc.want)
		}
	}
}

func TestSignificanceLabel(t *testing.T) {
	cases := []struct {
		p    float64
		want string
	}{
		{0.0001, "***"},
		{0.005, "**"},
		{0.03, "*"},
		{0.05, "ns"},
		{0.5, "ns"},
	}
	for _, tc := range cases {
		if got := SignificanceLabel(tc.p); got != tc.want {
			t.Errorf("SignificanceLabel(%g) = %q, want %q", tc.p, got, tc.want)
		}
	}
}
