package paginate

import "testing"

func numbered(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestSliceMiddlePage(t *testing.T) {
	p := Slice(numbered(25), 10, 1)
	if len(p.Items) != 10 {
		t.Fatalf("len(items) = %d, want 10", len(p.Items))
	}
	if p.Items[0] != 10 || p.Items[9] != 19 {
		t.Fatalf("unexpected window: %v", p.Items)
	}
	if !p.HasNext || !p.HasPrev {
		t.Fatalf("hasNext=%v hasPrev=%v, want true/true", p.HasNext, p.HasPrev)
	}
}

func TestSliceLastPartialPage(t *testing.T) {
	p := Slice(numbered(25), 10, 2)
	if len(p.Items) != 5 {
		t.Fatalf("len(items) = %d, want 5", len(p.Items))
	}
	if p.HasNext {
		t.Fatal("hasNext = true on the last page")
	}
	if !p.HasPrev {
		t.Fatal("hasPrev = false on page 2")
	}
}

func TestSliceOutOfRange(t *testing.T) {
	p := Slice(numbered(25), 10, 3)
	if len(p.Items) != 0 {
		t.Fatalf("len(items) = %d, want 0", len(p.Items))
	}
	if p.HasNext {
		t.Fatal("hasNext = true past the end")
	}
	if !p.HasPrev {
		t.Fatal("hasPrev = false on a positive index")
	}
	p = Slice(numbered(25), 10, -1)
	if len(p.Items) != 0 || p.HasNext || p.HasPrev {
		t.Fatalf("negative index should yield an empty page, got %+v", p)
	}
}

func TestSliceHugeIndex(t *testing.T) {
	// index*size would wrap around; the page must come back empty instead.
	p := Slice(numbered(25), 10, 1<<62)
	if len(p.Items) != 0 {
		t.Fatalf("len(items) = %d, want 0", len(p.Items))
	}
	if p.HasNext {
		t.Fatal("hasNext = true past the end")
	}
	if !p.HasPrev {
		t.Fatal("hasPrev = false on a positive index")
	}
}

func TestSliceFirstPage(t *testing.T) {
	p := Slice(numbered(25), 10, 0)
	if len(p.Items) != 10 {
		t.Fatalf("len(items) = %d, want 10", len(p.Items))
	}
	if p.HasPrev {
		t.Fatal("hasPrev = true on page 0")
	}
	if !p.HasNext {
		t.Fatal("hasNext = false with 25 items")
	}
}

func TestSliceExactBoundary(t *testing.T) {
	p := Slice(numbered(20), 10, 1)
	if len(p.Items) != 10 {
		t.Fatalf("len(items) = %d, want 10", len(p.Items))
	}
	if p.HasNext {
		t.Fatal("hasNext = true when the page ends exactly at the sequence end")
	}
}

func TestSliceEmptyInput(t *testing.T) {
	p := Slice[int](nil, 10, 0)
	if len(p.Items) != 0 || p.HasNext || p.HasPrev {
		t.Fatalf("empty input should yield an empty page, got %+v", p)
	}
}
