package randstream

import "testing"

func TestGetIsDeterministic(t *testing.T) {
	root := New(42)
	a := root.Get("workers")
	b := root.Get("workers")
	if a.Word() != b.Word() {
		t.Errorf("Get(%q) twice = %d, %d, want equal", "workers", a.Word(), b.Word())
	}
}

func TestGetDependsOnName(t *testing.T) {
	root := New(42)
	a := root.Get("left")
	b := root.Get("right")
	if a.Word() == b.Word() {
		t.Errorf("Get with different names produced the same seed: %d", a.Word())
	}
}

func TestGetDependsOnParentSeed(t *testing.T) {
	a := New(1).Get("child")
	b := New(2).Get("child")
	if a.Word() == b.Word() {
		t.Errorf("different root seeds produced the same child seed: %d", a.Word())
	}
}

func TestGetIndependentOfCallOrder(t *testing.T) {
	root := New(7)
	left1 := root.Get("left")
	right1 := root.Get("right")

	root2 := New(7)
	right2 := root2.Get("right")
	left2 := root2.Get("left")

	if left1.Word() != left2.Word() || right1.Word() != right2.Word() {
		t.Error("derived children depend on the order Get was called in")
	}
}

func TestPoissonNonNegative(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		v := New(seed).Poisson(5)
		if v < 0 {
			t.Errorf("Poisson(5) with seed %d = %f, want >= 0", seed, v)
		}
	}
}

func TestSelectEmpty(t *testing.T) {
	_, ok := Select(New(1), []int{})
	if ok {
		t.Error("Select on an empty slice should report false")
	}
}

func TestSelectDeterministic(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	r := New(9)
	v1, ok1 := Select(r, items)
	v2, ok2 := Select(r, items)
	if !ok1 || !ok2 || v1 != v2 {
		t.Errorf("Select(%v) twice = (%q,%v), (%q,%v), want equal", items, v1, ok1, v2, ok2)
	}
}

func TestSelectReturnsAnElement(t *testing.T) {
	items := []string{"a", "b", "c"}
	v, ok := Select(New(3), items)
	if !ok {
		t.Fatal("Select should report true for a non-empty slice")
	}
	found := false
	for _, item := range items {
		if item == v {
			found = true
		}
	}
	if !found {
		t.Errorf("Select returned %q, not a member of %v", v, items)
	}
}
