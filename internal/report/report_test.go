package report

import (
	"context"
	"strings"
	"testing"
)

func TestSubmitAndRecent(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())

	if err := svc.Submit(ctx, 1, "anna", "Route 12 skips the Opera stop"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := svc.Submit(ctx, 2, "vahe", "  wrong coords on 44  "); err != nil {
		t.Fatalf("submit: %v", err)
	}

	got, err := svc.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("reports = %d, want 2", len(got))
	}
	if got[0].UserID != 2 {
		t.Fatalf("newest first: got user %d", got[0].UserID)
	}
	if got[0].Text != "wrong coords on 44" {
		t.Fatalf("text not trimmed: %q", got[0].Text)
	}
}

func TestSubmitRejectsEmpty(t *testing.T) {
	svc := NewService(NewMemoryStore())
	if err := svc.Submit(context.Background(), 1, "anna", "   "); err != ErrEmptyReport {
		t.Fatalf("err = %v, want ErrEmptyReport", err)
	}
}

func TestSubmitCapsLength(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())
	if err := svc.Submit(ctx, 1, "anna", strings.Repeat("x", MaxLength+500)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	got, _ := svc.Recent(ctx, 1)
	if len(got[0].Text) != MaxLength {
		t.Fatalf("stored length = %d, want %d", len(got[0].Text), MaxLength)
	}
}

func TestRecentLimit(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())
	for i := 0; i < 5; i++ {
		if err := svc.Submit(ctx, int64(i), "u", "report"); err != nil {
			t.Fatal(err)
		}
	}
	got, _ := svc.Recent(ctx, 3)
	if len(got) != 3 {
		t.Fatalf("reports = %d, want 3", len(got))
	}
}
