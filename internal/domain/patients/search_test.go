package patients

import "testing"

func roster2() []Patient {
	return []Patient{
		{ID: 1, FullName: "Ana Ruiz", Age: 34, Gender: GenderFemale},
		{ID: 2, FullName: "Bruno Diaz", Age: 52, Gender: GenderMale},
	}
}

func ids(list []Patient) []int {
	out := make([]int, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}

func TestSearch_ByNameSubstring(t *testing.T) {
	got := ids(Search(roster2(), "an"))
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected [1], got %v", got)
	}
}

func TestSearch_ByIDSubstring(t *testing.T) {
	got := ids(Search(roster2(), "2"))
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected [2], got %v", got)
	}
}

func TestSearch_CaseInsensitiveAndEmpty(t *testing.T) {
	if got := ids(Search(roster2(), "BRUNO")); len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected [2], got %v", got)
	}
	if got := Search(roster2(), ""); len(got) != 2 {
		t.Fatalf("empty text should return everything, got %v", ids(got))
	}
	if got := Search(nil, "x"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
}

func TestSearch_IsOrderedSubset(t *testing.T) {
	roster := []Patient{
		{ID: 10, FullName: "Luis Medina"},
		{ID: 3, FullName: "Carla Mendoza"},
		{ID: 31, FullName: "Mario Luna"},
	}
	got := Search(roster, "m")
	if len(got) != 3 {
		t.Fatalf("expected all three, got %v", ids(got))
	}
	gotIDs := ids(Search(roster, "3"))
	if len(gotIDs) != 2 || gotIDs[0] != 3 || gotIDs[1] != 31 {
		t.Fatalf("expected roster order [3 31], got %v", gotIDs)
	}
}
