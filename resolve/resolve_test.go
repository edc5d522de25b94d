package resolve

import (
	"testing"

	"github.com/signadot/yamlir/ir/tag"
)

func TestCore(t *testing.T) {
	cases := []struct {
		in   string
		want tag.Name
	}{
		{"", tag.Null},
		{"~", tag.Null},
		{"null", tag.Null},
		{"Null", tag.Null},
		{"NULL", tag.Null},
		{"nULL", tag.Str},
		{"true", tag.Bool},
		{"True", tag.Bool},
		{"FALSE", tag.Bool},
		{"yes", tag.Str},
		{"0", tag.Int},
		{"-12", tag.Int},
		{"+12", tag.Int},
		{"0o14", tag.Int},
		{"0x1F", tag.Int},
		{"0b101", tag.Str},
		{"1.5", tag.Float},
		{"-1.5e+3", tag.Float},
		{".5", tag.Float},
		{"1.", tag.Float},
		{"1e+06", tag.Float},
		{".inf", tag.Float},
		{"-.Inf", tag.Float},
		{"+.INF", tag.Float},
		{".nan", tag.Float},
		{"-.nan", tag.Str},
		{"<<", tag.Merge},
		{"=", tag.Value},
		{"2001-12-14", tag.Timestamp},
		{"2001-12-14t21:59:43.10-05:00", tag.Timestamp},
		{"2001-12-14 21:59:43.10 -5", tag.Timestamp},
		{"2001-12-14x", tag.Str},
		{"hello", tag.Str},
		{"190:20:30", tag.Str},
	}
	for _, c := range cases {
		if got := Core.ResolveScalar(c.in); got != c.want {
			t.Errorf("core %q: got %s want %s", c.in, got, c.want)
		}
	}
}

func TestJSON(t *testing.T) {
	cases := []struct {
		in   string
		want tag.Name
	}{
		{"null", tag.Null},
		{"Null", tag.Str},
		{"~", tag.Str},
		{"", tag.Str},
		{"true", tag.Bool},
		{"True", tag.Str},
		{"-3", tag.Int},
		{"+3", tag.Str},
		{"0x1F", tag.Str},
		{"0o7", tag.Str},
		{"3.25", tag.Float},
		{"3e10", tag.Float},
		{".inf", tag.Float},
		{"-.inf", tag.Float},
		{".Inf", tag.Str},
		{".nan", tag.Float},
		{"<<", tag.Str},
	}
	for _, c := range cases {
		if got := JSON.ResolveScalar(c.in); got != c.want {
			t.Errorf("json %q: got %s want %s", c.in, got, c.want)
		}
	}
}

func TestFailsafe(t *testing.T) {
	for _, in := range []string{"", "null", "true", "1", "1.5", ".inf", "<<"} {
		if got := Failsafe.ResolveScalar(in); got != tag.Str {
			t.Errorf("failsafe %q: got %s", in, got)
		}
	}
}

func TestDeterministic(t *testing.T) {
	inputs := []string{"1", "true", "x", "~", "1.5", "1", "x", "~"}
	for _, s := range []*Schema{Failsafe, JSON, Core} {
		first := map[string]tag.Name{}
		for _, in := range inputs {
			got := s.ResolveScalar(in)
			if prev, ok := first[in]; ok && prev != got {
				t.Errorf("%s: %q resolved to %s then %s", s, in, prev, got)
			}
			first[in] = got
		}
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"failsafe", "json", "core", ""} {
		if _, err := ByName(name); err != nil {
			t.Errorf("%q: %v", name, err)
		}
	}
	if _, err := ByName("yaml11"); err == nil {
		t.Error("expected error")
	}
}

func TestCached(t *testing.T) {
	c, err := NewCached(Core, 2)
	if err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if got := c.ResolveScalar("12"); got != tag.Int {
			t.Fatalf("got %s", got)
		}
	}
	c.ResolveScalar("a")
	c.ResolveScalar("b")
	if c.Len() != 2 {
		t.Errorf("len %d", c.Len())
	}
	if got := c.ResolveScalar("12"); got != tag.Int {
		t.Errorf("after eviction got %s", got)
	}
	if _, err := NewCached(Core, 0); err == nil {
		t.Error("expected error for zero size")
	}
}
