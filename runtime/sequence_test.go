package runtime

import "testing"

func TestSequencePushPop(t *testing.T) {
	s := NewSequence(1, 2, 3)
	s.Push(4)
	if s.Length() != 4 {
		t.Fatalf("expected length 4, got %d", s.Length())
	}
	v, err := s.Pop()
	if err != nil || v != 4 {
		t.Fatalf("expected 4, nil; got %d, %v", v, err)
	}
}

func TestSequencePopEmpty(t *testing.T) {
	s := NewSequence[int]()
	if _, err := s.Pop(); err == nil {
		t.Fatal("expected error popping empty sequence")
	}
}

func TestSequenceAtNegative(t *testing.T) {
	s := NewSequence(10, 20, 30)
	v, err := s.At(-1)
	if err != nil || v != 30 {
		t.Fatalf("expected 30, nil; got %d, %v", v, err)
	}
}

func TestSequenceAtOutOfBounds(t *testing.T) {
	s := NewSequence(1, 2)
	if _, err := s.At(5); err == nil {
		t.Fatal("expected out of bounds error")
	}
}

func TestSequenceSlice(t *testing.T) {
	tests := []struct {
		name  string
		start int
		end   int
		want  []int
	}{
		{"middle", 1, 3, []int{2, 3}},
		{"clampEnd", 2, 100, []int{3, 4, 5}},
		{"clampStart", -5, 2, []int{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSequence(1, 2, 3, 4, 5)
			got := s.Slice(tt.start, tt.end).data
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestSequenceFindIndexMissing(t *testing.T) {
	s := NewSequence(1, 2, 3)
	if idx := s.FindIndex(func(v int) bool { return v == 99 }); idx != -1 {
		t.Fatalf("expected -1, got %d", idx)
	}
}

func TestMapSequenceAndReduce(t *testing.T) {
	s := NewSequence(1, 2, 3)
	doubled := MapSequence(s, func(v int) int { return v * 2 })
	sum := ReduceSequence(doubled, func(acc, v int) int { return acc + v }, 0)
	if sum != 12 {
		t.Fatalf("expected 12, got %d", sum)
	}
}

func TestIndexOfAndIncludes(t *testing.T) {
	s := NewSequence("a", "b", "c")
	if IndexOf(s, "b", 0) != 1 {
		t.Fatal("expected index 1")
	}
	if IndexOf(s, "z", 0) != -1 {
		t.Fatal("expected -1 for missing element")
	}
	if !Includes(s, "c", 0) {
		t.Fatal("expected Includes true")
	}
}

func TestLastIndexOf(t *testing.T) {
	s := NewSequence(1, 2, 1, 3, 1)
	if LastIndexOf(s, 1, -1) != 4 {
		t.Fatalf("expected 4, got %d", LastIndexOf(s, 1, -1))
	}
}

func TestSequenceJoin(t *testing.T) {
	s := NewSequence(1, 2, 3)
	if got := s.Join(", "); got != "1, 2, 3" {
		t.Fatalf("expected %q, got %q", "1, 2, 3", got)
	}
}
