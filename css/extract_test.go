package css_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"scs/css"
)

func TestMarkerShape(t *testing.T) {
	got := css.Marker("sc-keyframes-abc")
	want := "/* sc-component-id: sc-keyframes-abc */\n"
	if got != want {
		t.Fatalf("marker mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestExtract_NoMarkers(t *testing.T) {
	e := css.NewExtractor(zap.NewNop())
	comps, err := e.Extract(".a{color:red}\n/* plain comment */\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comps) != 0 {
		t.Fatalf("expected no components, got %d", len(comps))
	}
}

func TestExtract_OrderAndBytes(t *testing.T) {
	blockA := css.Marker("a") + ".sc-a{color:red}\n"
	blockB := css.Marker("b") + ".sc-b{color:blue}"
	text := "\n" + blockA + blockB

	e := css.NewExtractor(zap.NewNop())
	comps, err := e.Extract(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comps) != 2 {
		t.Fatalf("expected 2 components, got %d", len(comps))
	}
	if comps[0].ComponentID != "a" || comps[1].ComponentID != "b" {
		t.Fatalf("wrong order: %q, %q", comps[0].ComponentID, comps[1].ComponentID)
	}
	if comps[0].CSS != blockA {
		t.Errorf("component a not byte-exact:\n got %q\nwant %q", comps[0].CSS, blockA)
	}
	if comps[1].CSS != blockB {
		t.Errorf("component b not byte-exact:\n got %q\nwant %q", comps[1].CSS, blockB)
	}
}

func TestExtract_ForeignCommentsStayInBlock(t *testing.T) {
	block := css.Marker("a") + "/* media tweak */\n.sc-a{display:none}\n"
	e := css.NewExtractor(zap.NewNop())
	comps, err := e.Extract(block)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comps) != 1 {
		t.Fatalf("expected 1 component, got %d", len(comps))
	}
	if comps[0].CSS != block {
		t.Errorf("non-marker comment lost:\n got %q\nwant %q", comps[0].CSS, block)
	}
}

func TestExtract_RoundTripThroughItself(t *testing.T) {
	text := css.Marker("p") + ".p{margin:0}\n" + css.Marker("q") + ".q{padding:0}\n"
	e := css.NewExtractor(zap.NewNop())

	comps, err := e.Extract(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var rebuilt strings.Builder
	for _, c := range comps {
		rebuilt.WriteString(c.CSS)
	}
	if rebuilt.String() != text {
		t.Fatalf("concatenated blocks do not reproduce input:\n got %q\nwant %q", rebuilt.String(), text)
	}

	again, err := e.Extract(rebuilt.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(again) != len(comps) {
		t.Fatalf("expected %d components, got %d", len(comps), len(again))
	}
	for i := range comps {
		if again[i] != comps[i] {
			t.Errorf("component %d differs after round trip: %+v vs %+v", i, again[i], comps[i])
		}
	}
}
