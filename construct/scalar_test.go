package construct

import (
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1.5", 1.5, true},
		{"-1.5e+3", -1500, true},
		{".5", 0.5, true},
		{"1.", 1, true},
		{"1_000.25", 1000.25, true},
		{"190:20:30.5", 685230.5, true},
		{"-1:30.5", -90.5, true},
		{".inf", math.Inf(1), true},
		{"+.Inf", math.Inf(1), true},
		{"-.INF", math.Inf(-1), true},
		{"inf", 0, false},
		{"Infinity", 0, false},
		{"0x1p-2", 0, false},
		{"abc", 0, false},
		{"1:1.5:3", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseFloat(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseFloat(%q) = %v, %t; want %v, %t", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	for _, nan := range []string{".nan", ".NaN", ".NAN"} {
		if got, ok := ParseFloat(nan); !ok || !math.IsNaN(got) {
			t.Errorf("%q: %v %t", nan, got, ok)
		}
	}
	if _, ok := ParseFloat("NaN"); ok {
		t.Error("NaN accepted")
	}
}

func TestParseFloatShortestRoundTrip(t *testing.T) {
	for _, f := range []float64{0, 1, -1, 0.1, 1e21, 5e-324, math.MaxFloat64, -math.SmallestNonzeroFloat64, 123456.789} {
		s := strconv.FormatFloat(f, 'g', -1, 64)
		got, ok := ParseFloat(s)
		if !ok || math.Float64bits(got) != math.Float64bits(f) {
			t.Errorf("%v via %q: got %v %t", f, s, got, ok)
		}
	}
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "True", "YES", "on", "On"} {
		if v, ok := ParseBool(s); !ok || !v {
			t.Errorf("%q: %t %t", s, v, ok)
		}
	}
	for _, s := range []string{"false", "No", "OFF"} {
		if v, ok := ParseBool(s); !ok || v {
			t.Errorf("%q: %t %t", s, v, ok)
		}
	}
	if _, ok := ParseBool("y"); ok {
		t.Error("y accepted")
	}
}

func TestParseNull(t *testing.T) {
	for _, s := range []string{"", "~", "null", "Null", "NULL"} {
		if !ParseNull(s) {
			t.Errorf("%q rejected", s)
		}
	}
	if ParseNull("nil") {
		t.Error("nil accepted")
	}
}

func TestParseBinary(t *testing.T) {
	got, ok := ParseBinary("R0lG\nODlh DAAM\n")
	if !ok {
		t.Fatal("no value")
	}
	if diff := cmp.Diff([]byte("GIF89a\x0c\x00\x0c"), got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	got, ok = ParseBinary("aGk=")
	if !ok || string(got) != "hi" {
		t.Errorf("padded: %q %t", got, ok)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2002-12-14", time.Date(2002, 12, 14, 0, 0, 0, 0, time.UTC)},
		{"2001-12-15T02:59:43.1Z", time.Date(2001, 12, 15, 2, 59, 43, 100000000, time.UTC)},
		{"2001-12-14t21:59:43.10-05:00", time.Date(2001, 12, 15, 2, 59, 43, 100000000, time.UTC)},
		{"2001-12-14 21:59:43.10 -5", time.Date(2001, 12, 15, 2, 59, 43, 100000000, time.UTC)},
		{"2001-12-15 2:59:43.10", time.Date(2001, 12, 15, 2, 59, 43, 100000000, time.UTC)},
		{"2001-12-14 21:59:43 +05:30", time.Date(2001, 12, 14, 16, 29, 43, 0, time.UTC)},
		{"2001-12-15T02:59:43.1234567891Z", time.Date(2001, 12, 15, 2, 59, 43, 123456789, time.UTC)},
	}
	for _, tt := range tests {
		got, ok := ParseTimestamp(tt.in)
		if !ok {
			t.Errorf("%q: no value", tt.in)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("%q: got %v want %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"2001-13-01", "2001-02-30", "2001-12-14 25:00:00", "2001-12-14x", "12:00:00"} {
		if _, ok := ParseTimestamp(bad); ok {
			t.Errorf("%q accepted", bad)
		}
	}
}

func TestFractionNanos(t *testing.T) {
	if got := fractionNanos("1"); got != 100000000 {
		t.Errorf("got %d", got)
	}
	if got := fractionNanos("1234567891234"); got != 123456789 {
		t.Errorf("got %d", got)
	}
	if got := fractionNanos(""); got != 0 {
		t.Errorf("got %d", got)
	}
}
