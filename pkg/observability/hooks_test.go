package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Batch hooks
	b := NoopBatchHooks{}
	b.OnRunStart(ctx, 100, 4)
	b.OnRunComplete(ctx, 90, 8, 2, time.Second)
	b.OnFileStart(ctx, "/data/plan.json")
	b.OnFileComplete(ctx, "/data/plan.json", "usable", time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "plan")
	c.OnCacheMiss(ctx, "plan")
	c.OnCacheSet(ctx, "plan", 1024)

	// API hooks
	a := NoopAPIHooks{}
	a.OnRequest(ctx, "POST", "/api/v1/analyze")
	a.OnResponse(ctx, "POST", "/api/v1/analyze", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Batch().(NoopBatchHooks); !ok {
		t.Error("Batch() should return NoopBatchHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := API().(NoopAPIHooks); !ok {
		t.Error("API() should return NoopAPIHooks by default")
	}

	// Set custom hooks
	customBatch := &testBatchHooks{}
	SetBatchHooks(customBatch)
	if Batch() != customBatch {
		t.Error("SetBatchHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customAPI := &testAPIHooks{}
	SetAPIHooks(customAPI)
	if API() != customAPI {
		t.Error("SetAPIHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Batch().(NoopBatchHooks); !ok {
		t.Error("Reset() should restore NoopBatchHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testBatchHooks{}
	SetBatchHooks(custom)

	// Setting nil should be ignored
	SetBatchHooks(nil)

	if Batch() != custom {
		t.Error("SetBatchHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testBatchHooks struct{ NoopBatchHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testAPIHooks struct{ NoopAPIHooks }
