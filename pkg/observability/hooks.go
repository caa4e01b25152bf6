// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about batch execution, cache operations, and API requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBatchHooks(&myBatchHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Batch().OnFileStart(ctx, path)
//	// ... analyze file ...
//	observability.Batch().OnFileComplete(ctx, path, class, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Batch Hooks
// =============================================================================

// BatchHooks receives events from batch analysis runs.
type BatchHooks interface {
	// Run events
	OnRunStart(ctx context.Context, fileCount, workers int)
	OnRunComplete(ctx context.Context, analyzed, skipped, failed int, duration time.Duration)

	// Per-file events
	OnFileStart(ctx context.Context, path string)
	OnFileComplete(ctx context.Context, path, class string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// API Hooks
// =============================================================================

// APIHooks receives events from the HTTP API server.
type APIHooks interface {
	// OnRequest records an incoming API request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed API request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBatchHooks is a no-op implementation of BatchHooks.
type NoopBatchHooks struct{}

func (NoopBatchHooks) OnRunStart(context.Context, int, int)                        {}
func (NoopBatchHooks) OnRunComplete(context.Context, int, int, int, time.Duration) {}
func (NoopBatchHooks) OnFileStart(context.Context, string)                         {}
func (NoopBatchHooks) OnFileComplete(context.Context, string, string, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopAPIHooks is a no-op implementation of APIHooks.
type NoopAPIHooks struct{}

func (NoopAPIHooks) OnRequest(context.Context, string, string)                      {}
func (NoopAPIHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	batchHooks BatchHooks = NoopBatchHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	apiHooks   APIHooks   = NoopAPIHooks{}
	hooksMu    sync.RWMutex
)

// SetBatchHooks registers custom batch hooks.
// This should be called once at application startup before any batch runs.
func SetBatchHooks(h BatchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		batchHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetAPIHooks registers custom API hooks.
// This should be called once at application startup before serving requests.
func SetAPIHooks(h APIHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		apiHooks = h
	}
}

// Batch returns the registered batch hooks.
func Batch() BatchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return batchHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// API returns the registered API hooks.
func API() APIHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return apiHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	batchHooks = NoopBatchHooks{}
	cacheHooks = NoopCacheHooks{}
	apiHooks = NoopAPIHooks{}
}
