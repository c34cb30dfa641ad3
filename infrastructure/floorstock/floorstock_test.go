package floorstock

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLookupFloorStockHit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req lookupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.PartNumber != "100-200" {
			t.Errorf("expected part_number 100-200, got %q", req.PartNumber)
		}
		_ = json.NewEncoder(w).Encode(lookupResponse{IsFloorStock: true, Location: "A12"})
	}))
	t.Cleanup(srv.Close)

	res := NewClient(srv.URL, time.Second).Lookup(context.Background(), "100-200")
	if !res.FloorStock {
		t.Fatalf("expected floor stock result")
	}
	if res.Location != "A12" {
		t.Fatalf("expected location A12, got %q", res.Location)
	}
	if got := res.QuantityOverride(); got != "FS-A12" {
		t.Fatalf("expected quantity override FS-A12, got %q", got)
	}
}

func TestLookupNotFloorStock(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(lookupResponse{IsFloorStock: false})
	}))
	t.Cleanup(srv.Close)

	res := NewClient(srv.URL, time.Second).Lookup(context.Background(), "300")
	if res.FloorStock {
		t.Fatalf("expected not floor stock")
	}
	if got := res.QuantityOverride(); got != "" {
		t.Fatalf("expected empty override, got %q", got)
	}
}

func TestLookupFailsOpen(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("{not json"))
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			t.Cleanup(srv.Close)

			res := NewClient(srv.URL, time.Second).Lookup(context.Background(), "400")
			if res.FloorStock {
				t.Fatalf("expected fail-open not-floor-stock result")
			}
		})
	}
}

func TestLookupTimeoutFailsOpen(t *testing.T) {
	t.Parallel()

	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-blocked
	}))
	t.Cleanup(func() {
		close(blocked)
		srv.Close()
	})

	start := time.Now()
	res := NewClient(srv.URL, 50*time.Millisecond).Lookup(context.Background(), "500")
	if res.FloorStock {
		t.Fatalf("expected fail-open result on timeout")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("lookup blocked too long: %v", elapsed)
	}
}

func TestLookupBlankPartNumberSkipsRequest(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	t.Cleanup(srv.Close)

	res := NewClient(srv.URL, time.Second).Lookup(context.Background(), "   ")
	if res.FloorStock || called {
		t.Fatalf("expected blank part number to resolve locally without a request")
	}
}

func TestQuantityOverrideTrimsLocation(t *testing.T) {
	t.Parallel()

	res := Result{FloorStock: true, Location: " B07 "}
	if got := res.QuantityOverride(); got != "FS-B07" {
		t.Fatalf("expected FS-B07, got %q", got)
	}
	if got := (Result{FloorStock: true}).QuantityOverride(); got != "" {
		t.Fatalf("expected empty override for missing location, got %q", got)
	}
}
