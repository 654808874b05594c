package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Hour,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"
	endpoint := "/ats/score"
	method := "POST"

	// Should allow requests up to limit
	for i := 0; i < 10; i++ {
		allowed, rateInfo := limiter.Allow(clientID, endpoint, method)
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", rateInfo.Limit)
		}
		if rateInfo.Remaining != 9-i {
			t.Errorf("Expected remaining %d, got %d", 9-i, rateInfo.Remaining)
		}
	}

	// 11th request should be denied
	allowed, rateInfo := limiter.Allow(clientID, endpoint, method)
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if rateInfo.Remaining != 0 {
		t.Errorf("Expected remaining 0, got %d", rateInfo.Remaining)
	}
	if rateInfo.RetryAfter <= 0 {
		t.Error("Expected retry after to be positive")
	}
	if !rateInfo.ResetTime.After(time.Now()) {
		t.Error("Reset time should be in the future")
	}
}

func TestLimiter_Refill(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  20,
		DefaultWindow: time.Second,
		DefaultBurst:  1,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("127.0.0.1", "/x", "POST"); !allowed {
		t.Fatal("Expected first request to be allowed")
	}
	if allowed, _ := limiter.Allow("127.0.0.1", "/x", "POST"); allowed {
		t.Fatal("Expected second request to be denied")
	}

	// One token every 50ms
	time.Sleep(120 * time.Millisecond)

	if allowed, _ := limiter.Allow("127.0.0.1", "/x", "POST"); !allowed {
		t.Error("Expected request to be allowed after refill")
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// Whitelisted IP should always be allowed
	for i := 0; i < 100; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/test", "GET")
		if !allowed {
			t.Errorf("Expected whitelisted request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 0 {
			t.Errorf("Expected limit 0 for whitelisted, got %d", rateInfo.Limit)
		}
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// Blacklisted IP should always be denied
	allowed, _ := limiter.Allow("192.168.1.1", "/test", "GET")
	if allowed {
		t.Error("Expected blacklisted request to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	// When disabled, all requests should be allowed
	for i := 0; i < 100; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/test", "GET")
		if !allowed {
			t.Errorf("Expected request %d to be allowed when disabled", i+1)
		}
		if rateInfo.Limit != 0 {
			t.Errorf("Expected limit 0 when disabled, got %d", rateInfo.Limit)
		}
	}
}

func TestLimiter_UnlimitedProbes(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	for _, path := range []string{"/health", "/metrics", "/"} {
		for i := 0; i < 10; i++ {
			if allowed, _ := limiter.Allow("127.0.0.1", path, "GET"); !allowed {
				t.Errorf("Expected GET %s request %d to be allowed", path, i+1)
			}
		}
	}
	if limiter.Size() != 0 {
		t.Errorf("Expected no buckets for unlimited paths, got %d", limiter.Size())
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/resume/upload", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5},
		},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"

	// Test endpoint-specific limit (burst allows 5 immediately)
	for i := 0; i < 5; i++ {
		allowed, rateInfo := limiter.Allow(clientID, "/resume/upload", "POST")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 5 {
			t.Errorf("Expected limit 5, got %d", rateInfo.Limit)
		}
	}

	// 6th request should be denied (limit reached)
	allowed, rateInfo := limiter.Allow(clientID, "/resume/upload", "POST")
	if allowed {
		t.Error("Expected 6th request to be denied")
	}
	if rateInfo.Limit != 5 {
		t.Errorf("Expected limit 5, got %d", rateInfo.Limit)
	}

	// Different endpoint should use default limit
	allowed, rateInfo = limiter.Allow(clientID, "/ats/score", "POST")
	if !allowed {
		t.Error("Expected different endpoint to be allowed")
	}
	if rateInfo.Limit != 1000 {
		t.Errorf("Expected default limit 1000, got %d", rateInfo.Limit)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Hour,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	var wg sync.WaitGroup
	allowedCount := 0
	var mu sync.Mutex

	// Make 200 concurrent requests (should only allow 100)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, _ := limiter.Allow("127.0.0.1", "/jobs/recommend", "POST")
			if allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	if allowedCount != 100 {
		t.Errorf("Expected 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_CleanupBuckets(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		clientID := fmt.Sprintf("127.0.0.%d", i+1)
		if allowed, _ := limiter.Allow(clientID, "/test", "POST"); !allowed {
			t.Errorf("Expected request from %s to be allowed", clientID)
		}
	}
	if limiter.Size() != 10 {
		t.Fatalf("Expected 10 buckets, got %d", limiter.Size())
	}

	// Nothing is older than an hour ago
	if removed := limiter.cleanupBuckets(time.Now().Add(-time.Hour)); removed != 0 {
		t.Errorf("Expected no buckets removed, got %d", removed)
	}

	// Everything is older than a future cutoff
	if removed := limiter.cleanupBuckets(time.Now().Add(time.Second)); removed != 10 {
		t.Errorf("Expected 10 buckets removed, got %d", removed)
	}
	if limiter.Size() != 0 {
		t.Errorf("Expected 0 buckets after cleanup, got %d", limiter.Size())
	}
}

func TestLimiter_Burst(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/ats/export-pdf", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// Should allow burst of 5 requests immediately
	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/ats/export-pdf", "POST")
		if !allowed {
			t.Errorf("Expected burst request %d to be allowed", i+1)
		}
	}

	// 6th request should be denied (burst exhausted, no refill yet)
	allowed, _ := limiter.Allow("127.0.0.1", "/ats/export-pdf", "POST")
	if allowed {
		t.Error("Expected request after burst to be denied")
	}
}

func TestLimiter_StopIdempotent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, CleanupInterval: time.Millisecond})
	limiter.Stop()
	limiter.Stop()
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, rateInfo := limiter.Allow("127.0.0.1", "/test", "POST")
	if !allowed {
		t.Error("Expected request to be allowed with default config")
	}
	if rateInfo.Limit != 120 {
		t.Errorf("Expected default limit 120, got %d", rateInfo.Limit)
	}
}

func TestNewConfig(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		cfg := NewConfig(Settings{Enabled: false, RequestsPerMinute: 10})
		if cfg.Enabled {
			t.Error("Expected disabled config")
		}
	})

	t.Run("enabled", func(t *testing.T) {
		cfg := NewConfig(Settings{
			Enabled:           true,
			RequestsPerMinute: 60,
			Burst:             10,
			Whitelist:         []string{"10.0.0.1, 10.0.0.2", ""},
			Blacklist:         []string{"1.2.3.4"},
		})
		if cfg.DefaultLimit != 60 || cfg.DefaultBurst != 10 || cfg.DefaultWindow != time.Minute {
			t.Errorf("Unexpected defaults: %+v", cfg)
		}
		if !cfg.Whitelist["10.0.0.1"] || !cfg.Whitelist["10.0.0.2"] || len(cfg.Whitelist) != 2 {
			t.Errorf("Unexpected whitelist: %v", cfg.Whitelist)
		}
		if !cfg.Blacklist["1.2.3.4"] {
			t.Errorf("Unexpected blacklist: %v", cfg.Blacklist)
		}
		if len(cfg.EndpointConfigs) == 0 {
			t.Error("Expected endpoint tiers")
		}
	})
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/resume/upload", Method: "POST", Limit: 5, Window: time.Minute},
		{Path: "/ats/", Method: "POST", Limit: 7, Window: time.Minute},
	}

	tests := []struct {
		name      string
		path      string
		method    string
		wantNil   bool
		wantLimit int
	}{
		{name: "health unlimited", path: "/health", method: "GET", wantLimit: 0},
		{name: "metrics unlimited", path: "/metrics", method: "GET", wantLimit: 0},
		{name: "exact", path: "/resume/upload", method: "POST", wantLimit: 5},
		{name: "prefix", path: "/ats/score", method: "POST", wantLimit: 7},
		{name: "method mismatch", path: "/resume/upload", method: "GET", wantNil: true},
		{name: "no match", path: "/career/recommend", method: "POST", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Expected nil, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("Expected match, got nil")
			}
			if got.Limit != tt.wantLimit {
				t.Errorf("Expected limit %d, got %d", tt.wantLimit, got.Limit)
			}
		})
	}
}
