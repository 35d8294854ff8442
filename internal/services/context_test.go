package services_test

import (
	"context"
	"testing"

	"juiceit/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithStage(ctx, "rip")
	ctx = services.WithTitle(ctx, 4)

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "rip" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if title, ok := services.TitleFromContext(ctx); !ok || title != 4 {
		t.Fatalf("unexpected title: %v %v", title, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	ctx = services.WithTitle(ctx, 0)
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	if _, ok := services.TitleFromContext(ctx); ok {
		t.Fatal("expected no title value")
	}
}
