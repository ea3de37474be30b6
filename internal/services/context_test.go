package services_test

import (
	"context"
	"testing"

	"hbcheckup/internal/services"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := services.WithRequestID(context.Background(), "req-123")
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankRequestIDPreservesContext(t *testing.T) {
	ctx := context.Background()
	if got := services.WithRequestID(ctx, ""); got != ctx {
		t.Fatal("expected context unchanged")
	}
	if _, ok := services.RequestIDFromContext(ctx); ok {
		t.Fatal("expected no request id")
	}
}
