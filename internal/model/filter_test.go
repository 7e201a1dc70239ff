package model

import "testing"

func boolPtr(b bool) *bool { return &b }

func TestFilterButtons_DocumentOrder(t *testing.T) {
	elements := []Element{
		{ID: 1, Role: "window", Children: []Element{
			{ID: 2, Role: "txt", Title: "Welcome"},
			{ID: 3, Role: "btn", Title: "Open A"},
			{ID: 4, Role: "group", Children: []Element{
				{ID: 5, Role: "btn", Title: "Nested"},
			}},
			{ID: 6, Role: "btn", Title: "Last"},
		}},
	}
	got := FilterButtons(elements)
	want := []string{"Open A", "Nested", "Last"}
	if len(got) != len(want) {
		t.Fatalf("expected %d buttons, got %d", len(want), len(got))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("button %d: got %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestFilterButtons_SkipsDisabled(t *testing.T) {
	elements := []Element{
		{ID: 1, Role: "btn", Title: "Disabled", Enabled: boolPtr(false)},
		{ID: 2, Role: "btn", Title: "Enabled", Enabled: boolPtr(true)},
		{ID: 3, Role: "btn", Title: "Default"},
	}
	got := FilterButtons(elements)
	if len(got) != 2 {
		t.Fatalf("expected 2 buttons, got %d", len(got))
	}
	if got[0].Title != "Enabled" || got[1].Title != "Default" {
		t.Errorf("unexpected buttons: %+v", got)
	}
}

func TestFilterButtons_None(t *testing.T) {
	elements := []Element{{ID: 1, Role: "window", Children: []Element{{ID: 2, Role: "txt"}}}}
	if got := FilterButtons(elements); len(got) != 0 {
		t.Errorf("expected no buttons, got %d", len(got))
	}
}

func TestAssignIDs_Sequential(t *testing.T) {
	elements := []Element{
		{Role: "window", Children: []Element{
			{Role: "btn"},
			{Role: "group", Children: []Element{{Role: "btn"}}},
		}},
		{Role: "txt"},
	}
	AssignIDs(elements)
	flat := FlattenElements(elements)
	for i, el := range flat {
		if el.ID != i+1 {
			t.Errorf("element %d (%s): got id %d, want %d", i, el.Path, el.ID, i+1)
		}
	}
}
