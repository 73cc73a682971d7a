package pagination

import "testing"

func TestRequest_Defaults(t *testing.T) {
	limit, offset := Request{}.Bounds()
	if limit != DefaultPageSize || offset != 0 {
		t.Fatalf("expected limit=%d offset=0, got %d/%d", DefaultPageSize, limit, offset)
	}

	limit, _ = Request{Page: 1, PageSize: 1000}.Bounds()
	if limit != MaxPageSize {
		t.Fatalf("expected page size capped at %d, got %d", MaxPageSize, limit)
	}
}

func TestNew_FirstPage(t *testing.T) {
	page := New([]int{1, 2, 3, 4, 5}, Request{Page: 1, PageSize: 5}, 11)

	if len(page.Items) != 5 {
		t.Fatalf("expected 5 items on page 1, got %d", len(page.Items))
	}
	if page.HasPrev {
		t.Fatalf("expected HasPrev=false on first page")
	}
	if !page.HasNext {
		t.Fatalf("expected HasNext=true on first page")
	}
	if page.Total != 11 {
		t.Fatalf("expected Total=11, got %d", page.Total)
	}
}

func TestNew_LastPage(t *testing.T) {
	page := New([]int{5, 6}, Request{Page: 2, PageSize: 4}, 6)

	if !page.HasPrev {
		t.Fatalf("expected HasPrev=true on last page")
	}
	if page.HasNext {
		t.Fatalf("expected HasNext=false on last page")
	}
}

func TestNew_Empty(t *testing.T) {
	page := New[int](nil, Request{}, 0)

	if page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("expected empty non-nil items, got %#v", page.Items)
	}
	if page.HasNext || page.HasPrev {
		t.Fatalf("expected no prev/next for empty list")
	}
}

func TestMap_KeepsMetadata(t *testing.T) {
	page := New([]int{1, 2}, Request{Page: 2, PageSize: 2}, 5)
	mapped := Map(page, func(i int) string { return string(rune('a' + i)) })

	if mapped.Items[0] != "b" || mapped.Items[1] != "c" {
		t.Fatalf("unexpected items: %v", mapped.Items)
	}
	if mapped.Page != 2 || !mapped.HasNext || !mapped.HasPrev || mapped.Total != 5 {
		t.Fatalf("metadata not preserved: %+v", mapped)
	}
}
