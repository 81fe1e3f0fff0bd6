package utils

import (
	"context"
	"testing"
)

func TestCorrelationIdContextRoundTrip(t *testing.T) {
	ctx := SetCorrelationIdInContext(context.Background(), "abc-123")
	cid, ok := GetCorrelationIdFromContext(ctx)
	if !ok || cid != "abc-123" {
		t.Fatalf("GetCorrelationIdFromContext = %q, %v", cid, ok)
	}

	if cid, ok := GetCorrelationIdFromContext(context.Background()); ok {
		t.Fatalf("empty context returned correlation id %q", cid)
	}
}
