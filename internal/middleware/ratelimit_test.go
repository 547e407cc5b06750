package middleware

import "testing"

func TestAsInt64(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int64
	}{
		{int64(7), 7},
		{int(3), 3},
		{float64(12), 12},
		{"42", 42},
		{"not-a-number", 0},
		{nil, 0},
	}
	for _, c := range cases {
		if got := asInt64(c.in); got != c.want {
			t.Errorf("asInt64(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}
