package runtime

import "testing"

func TestMappingSetGet(t *testing.T) {
	m := NewMapping[string, int]()
	m.Set("a", 1)
	v, err := m.Get("a")
	if err != nil || v != 1 {
		t.Fatalf("expected 1, nil; got %d, %v", v, err)
	}
}

func TestMappingGetMissing(t *testing.T) {
	m := NewMapping[string, int]()
	if _, err := m.Get("missing"); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestMappingRemoveAndHas(t *testing.T) {
	m := NewMapping[string, int]()
	m.Set("k", 1)
	m.Remove("k")
	if m.Has("k") {
		t.Fatal("expected key removed")
	}
}

func TestMappingKeysAndValues(t *testing.T) {
	m := NewMapping[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	if m.Size() != 2 {
		t.Fatalf("expected size 2, got %d", m.Size())
	}
	sum := ReduceSequence(m.Values(), func(acc, v int) int { return acc + v }, 0)
	if sum != 3 {
		t.Fatalf("expected sum 3, got %d", sum)
	}
}

func TestMappingClear(t *testing.T) {
	m := NewMapping[string, int]()
	m.Set("a", 1)
	m.Clear()
	if m.Size() != 0 {
		t.Fatalf("expected empty map, got size %d", m.Size())
	}
}
