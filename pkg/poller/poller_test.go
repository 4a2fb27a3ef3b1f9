package poller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"
)

type recordingSink struct {
	mu      sync.Mutex
	batches [][]Order
	errors  []error
}

func (s *recordingSink) NewOrders(orders []Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, orders)
}

func (s *recordingSink) Error(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, err)
}

func (s *recordingSink) batchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.batches)
}

func (s *recordingSink) errorCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.errors)
}

// ordersServer serves whatever order list the test currently configures and
// checks the bearer token on every request.
type ordersServer struct {
	mu       sync.Mutex
	orders   []Order
	fail     bool
	requests int
	server   *httptest.Server
}

func newOrdersServer(t *testing.T) *ordersServer {
	t.Helper()
	s := &ordersServer{}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		s.mu.Lock()
		s.requests++
		fail := s.fail
		orders := append([]Order(nil), s.orders...)
		s.mu.Unlock()

		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"orders": orders})
	}))
	t.Cleanup(s.server.Close)
	return s
}

func (s *ordersServer) set(orders []Order, fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = orders
	s.fail = fail
}

func (s *ordersServer) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

func order(id string) Order {
	return Order{ID: id, Name: "Ali Khan", Total: 18.47, Status: "RECEIVED", CreatedAt: time.Now()}
}

func sortedIDs(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	return out
}

func TestFirstPollAlertsForEverything(t *testing.T) {
	server := newOrdersServer(t)
	server.set([]Order{order("a"), order("b")}, false)

	sink := &recordingSink{}
	w := New(server.server.URL, "test-token", time.Second, sink, nil)

	w.Poll(context.Background())

	if sink.batchCount() != 1 {
		t.Fatalf("expected one batch, got %d", sink.batchCount())
	}
	if len(sink.batches[0]) != 2 {
		t.Fatalf("expected both orders in the batch, got %d", len(sink.batches[0]))
	}
}

func TestRepeatPollStaysQuiet(t *testing.T) {
	server := newOrdersServer(t)
	server.set([]Order{order("a"), order("b")}, false)

	sink := &recordingSink{}
	w := New(server.server.URL, "test-token", time.Second, sink, nil)

	w.Poll(context.Background())
	w.Poll(context.Background())

	if sink.batchCount() != 1 {
		t.Fatalf("unchanged listing must not re-alert, got %d batches", sink.batchCount())
	}
}

func TestNewOrdersAlertOnlyOnce(t *testing.T) {
	server := newOrdersServer(t)
	server.set([]Order{order("a"), order("b")}, false)

	sink := &recordingSink{}
	w := New(server.server.URL, "test-token", time.Second, sink, nil)

	w.Poll(context.Background())
	server.set([]Order{order("b"), order("c")}, false)
	w.Poll(context.Background())

	if sink.batchCount() != 2 {
		t.Fatalf("expected two batches, got %d", sink.batchCount())
	}
	second := sink.batches[1]
	if len(second) != 1 || second[0].ID != "c" {
		t.Fatalf("expected only the unseen order, got %+v", second)
	}

	// The seen set is replaced with the incoming listing, so an order that
	// disappears and comes back alerts again.
	got := sortedIDs(w.SeenIDs())
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("expected seen set {b,c}, got %v", got)
	}

	server.set([]Order{order("a"), order("b"), order("c")}, false)
	w.Poll(context.Background())
	third := sink.batches[2]
	if len(third) != 1 || third[0].ID != "a" {
		t.Fatalf("expected the returning order to alert again, got %+v", third)
	}
}

func TestFailedPollKeepsSeenSet(t *testing.T) {
	server := newOrdersServer(t)
	server.set([]Order{order("a")}, false)

	sink := &recordingSink{}
	w := New(server.server.URL, "test-token", time.Second, sink, nil)

	w.Poll(context.Background())
	if sink.batchCount() != 1 {
		t.Fatalf("expected initial batch, got %d", sink.batchCount())
	}

	server.set(nil, true)
	w.Poll(context.Background())
	if sink.errorCount() != 1 {
		t.Fatalf("expected one error, got %d", sink.errorCount())
	}
	if len(w.SeenIDs()) != 1 {
		t.Fatal("a failed poll must not clear the seen set")
	}

	// Recovery with the same listing stays quiet.
	server.set([]Order{order("a")}, false)
	w.Poll(context.Background())
	if sink.batchCount() != 1 {
		t.Fatalf("expected no new batch after recovery, got %d", sink.batchCount())
	}
}

func TestEmptyListingNeverAlerts(t *testing.T) {
	server := newOrdersServer(t)
	server.set(nil, false)

	sink := &recordingSink{}
	w := New(server.server.URL, "test-token", time.Second, sink, nil)

	w.Poll(context.Background())
	if sink.batchCount() != 0 {
		t.Fatalf("expected no batches, got %d", sink.batchCount())
	}
}

func TestRejectedTokenReportsError(t *testing.T) {
	server := newOrdersServer(t)
	server.set([]Order{order("a")}, false)

	sink := &recordingSink{}
	w := New(server.server.URL, "bad-token", time.Second, sink, nil)

	w.Poll(context.Background())
	if sink.errorCount() != 1 || sink.batchCount() != 0 {
		t.Fatalf("expected an error and no batches, got errors=%d batches=%d", sink.errorCount(), sink.batchCount())
	}
}

func TestOverlappingPollIsSkipped(t *testing.T) {
	release := make(chan struct{})
	var requests int
	var mu sync.Mutex

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		<-release
		json.NewEncoder(w).Encode(map[string]interface{}{"orders": []Order{}})
	}))
	defer server.Close()

	sink := &recordingSink{}
	w := New(server.URL, "test-token", time.Second, sink, nil)

	done := make(chan struct{})
	go func() {
		w.Poll(context.Background())
		close(done)
	}()

	// Wait for the slow request to be in flight, then poll again.
	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := requests
		mu.Unlock()
		if n == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first poll never reached the server")
		case <-time.After(time.Millisecond):
		}
	}

	w.Poll(context.Background())

	close(release)
	<-done

	mu.Lock()
	defer mu.Unlock()
	if requests != 1 {
		t.Fatalf("overlapping poll must be a no-op, got %d requests", requests)
	}
}

func TestStatePersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	state, err := LoadState(path)
	if err != nil {
		t.Fatalf("load empty state: %v", err)
	}
	if state.Token() != "" || state.Reviewed("a") {
		t.Fatal("fresh state must be empty")
	}

	if err := state.SetToken("saved-token"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if err := state.SetReviewed("a", true); err != nil {
		t.Fatalf("set reviewed: %v", err)
	}

	reloaded, err := LoadState(path)
	if err != nil {
		t.Fatalf("reload state: %v", err)
	}
	if reloaded.Token() != "saved-token" {
		t.Fatalf("token not persisted, got %q", reloaded.Token())
	}
	if !reloaded.Reviewed("a") || reloaded.Reviewed("b") {
		t.Fatal("reviewed flags not persisted correctly")
	}

	if err := reloaded.SetReviewed("a", false); err != nil {
		t.Fatalf("clear reviewed: %v", err)
	}
	final, err := LoadState(path)
	if err != nil {
		t.Fatalf("final reload: %v", err)
	}
	if final.Reviewed("a") {
		t.Fatal("cleared flag must not survive a reload")
	}
}

func TestMarkReviewedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	state, err := LoadState(path)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}

	w := New("http://localhost", "test-token", time.Second, &recordingSink{}, state)
	if err := w.MarkReviewed("a", true); err != nil {
		t.Fatalf("mark reviewed: %v", err)
	}
	if !state.Reviewed("a") {
		t.Fatal("expected the flag to be set through the watcher")
	}
}
