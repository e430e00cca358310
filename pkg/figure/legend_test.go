package figure

import "testing"

func TestLegendRegistryLastHandleWins(t *testing.T) {
	hA, hB, hC := &Artist{ID: 0}, &Artist{ID: 1}, &Artist{ID: 2}

	reg := NewLegendRegistry()
	reg.Observe("s1", hA)
	reg.Observe("s2", hB)
	reg.Observe("s1", hC)

	got := reg.Entries()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Label != "s1" || got[0].Handle != hC {
		t.Errorf("entry 0 = %s/%d, want s1/2", got[0].Label, got[0].Handle.ID)
	}
	if got[1].Label != "s2" || got[1].Handle != hB {
		t.Errorf("entry 1 = %s/%d, want s2/1", got[1].Label, got[1].Handle.ID)
	}
}

func TestLegendRegistrySameHandle(t *testing.T) {
	h := &Artist{}
	reg := NewLegendRegistry()
	reg.Observe("s1", h)
	reg.Observe("s1", h)
	if reg.Len() != 1 || reg.Entries()[0].Handle != h {
		t.Errorf("entries = %+v", reg.Entries())
	}
}

func TestConsolidateLegendOrder(t *testing.T) {
	a1 := &Artist{Label: "WT"}
	a2 := &Artist{Label: "KO"}
	a3 := &Artist{Label: ""}
	a4 := &Artist{Label: "WT"}
	a5 := &Artist{Label: "_hidden"}
	a6 := &Artist{Label: "EGF"}

	axes := []*Axes{
		{Artists: []*Artist{a1, a2, a3}},
		{Artists: []*Artist{a4, a5, a6}},
	}
	got := ConsolidateLegend(axes)

	want := []LegendEntry{
		{Label: "WT", Handle: a4},
		{Label: "KO", Handle: a2},
		{Label: "EGF", Handle: a6},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Label != want[i].Label || got[i].Handle != want[i].Handle {
			t.Errorf("entry %d = %q, want %q", i, got[i].Label, want[i].Label)
		}
	}
}

func TestConsolidateLegendEmpty(t *testing.T) {
	if got := ConsolidateLegend(nil); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
