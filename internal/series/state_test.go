package series

import "testing"

func TestParseSpec(t *testing.T) {
	spec, err := ParseSpec("2009zemd01:333:single")
	if err != nil {
		t.Fatalf("ParseSpec: %v", err)
	}
	if spec.WCAID != "2009ZEMD01" {
		t.Errorf("WCAID = %q, want uppercased 2009ZEMD01", spec.WCAID)
	}
	if spec.Event != "333" || spec.ResultType != Single {
		t.Errorf("spec = %+v", spec)
	}

	for _, bad := range []string{"", "2009ZEMD01", "2009ZEMD01:333", "a:b:c:d", "::", "2009ZEMD01::single"} {
		if _, err := ParseSpec(bad); err == nil {
			t.Errorf("ParseSpec(%q): expected error", bad)
		}
	}
}

func TestStateRoundTrip(t *testing.T) {
	specs := []GraphSpec{
		{WCAID: "2009ZEMD01", Event: "333", ResultType: Single},
		{WCAID: "2012PARK03", Event: "333", ResultType: Average},
		{WCAID: "2007VALK01", Event: "444", ResultType: Worst},
	}
	encoded := EncodeState(specs, "percent")

	got, view, err := ParseState(encoded)
	if err != nil {
		t.Fatalf("ParseState: %v", err)
	}
	if view != "percent" {
		t.Errorf("view = %q, want percent", view)
	}
	if len(got) != len(specs) {
		t.Fatalf("got %d specs, want %d", len(got), len(specs))
	}
	for i := range specs {
		if got[i] != specs[i] {
			t.Errorf("specs[%d] = %+v, want %+v", i, got[i], specs[i])
		}
	}
}

func TestParseStateStopsAtGap(t *testing.T) {
	// g3 without g2: the numbered sequence ends at the gap.
	specs, _, err := ParseState("g1=2009ZEMD01%3A333%3Asingle&g3=2012PARK03%3A333%3Asingle")
	if err != nil {
		t.Fatalf("ParseState: %v", err)
	}
	if len(specs) != 1 {
		t.Fatalf("got %d specs, want 1 (sequence stops at missing g2)", len(specs))
	}
}

func TestParseStateEmpty(t *testing.T) {
	specs, view, err := ParseState("")
	if err != nil {
		t.Fatalf("ParseState: %v", err)
	}
	if len(specs) != 0 || view != "" {
		t.Errorf("specs = %v, view = %q; want empty", specs, view)
	}
}

func TestParseStateBadSpec(t *testing.T) {
	if _, _, err := ParseState("g1=notaspec"); err == nil {
		t.Fatal("expected error for malformed spec inside state")
	}
}
