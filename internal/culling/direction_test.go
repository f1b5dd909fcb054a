package culling

import "testing"

func TestDirectionOpposite(t *testing.T) {
	cases := map[Direction]Direction{
		DirPosX: DirNegX,
		DirNegX: DirPosX,
		DirPosY: DirNegY,
		DirNegY: DirPosY,
		DirPosZ: DirNegZ,
		DirNegZ: DirPosZ,
	}
	for d, want := range cases {
		if got := d.Opposite(); got != want {
			t.Errorf("%s.Opposite() = %s, want %s", d, got, want)
		}
		if got := d.Opposite().Opposite(); got != d {
			t.Errorf("%s.Opposite().Opposite() = %s, want %s", d, got, d)
		}
	}
}

func TestDirectionSetAddContains(t *testing.T) {
	s := DirectionSetNone
	if !s.IsEmpty() {
		t.Fatal("zero value DirectionSet should be empty")
	}
	s = s.Add(DirPosX).Add(DirNegZ)
	if !s.Contains(DirPosX) || !s.Contains(DirNegZ) {
		t.Fatal("expected set to contain added directions")
	}
	if s.Contains(DirPosY) {
		t.Fatal("set should not contain a direction that was never added")
	}
	if s.IsEmpty() {
		t.Fatal("non-empty set reported as empty")
	}
}

func TestDirectionSetAllContainsEverything(t *testing.T) {
	for _, d := range allDirections {
		if !DirectionSetAll.Contains(d) {
			t.Errorf("DirectionSetAll missing %s", d)
		}
	}
}

func TestDirectionSetIntersect(t *testing.T) {
	a := DirectionSetNone.Add(DirPosX).Add(DirPosY)
	b := DirectionSetNone.Add(DirPosY).Add(DirPosZ)
	got := a.Intersect(b)
	if !got.Contains(DirPosY) || got.Contains(DirPosX) || got.Contains(DirPosZ) {
		t.Fatalf("intersection wrong: %06b", got)
	}
}

func TestDirectionSetDirectionsOrder(t *testing.T) {
	s := DirectionSetAll
	got := s.Directions()
	if len(got) != numDirections {
		t.Fatalf("len = %d, want %d", len(got), numDirections)
	}
	for i, d := range got {
		if d != allDirections[i] {
			t.Errorf("Directions()[%d] = %s, want %s", i, d, allDirections[i])
		}
	}
}
