// Package poller implements the owner dashboard's polling loop against the
// admin orders API: fetch on an interval, diff against the previously seen
// order ids, and alert exactly once per newly observed order.
package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Order is the slice of the admin order payload the watcher cares about.
type Order struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}

type listResponse struct {
	Orders []Order `json:"orders"`
}

// Sink receives watcher events. NewOrders fires at most once per poll
// cycle, batched over every order id not seen before. Error fires on a
// failed poll; the watcher keeps running and keeps its seen set.
type Sink interface {
	NewOrders(orders []Order)
	Error(err error)
}

// Watcher polls the orders API and deduplicates alerts across cycles.
type Watcher struct {
	client   *http.Client
	baseURL  string
	token    string
	interval time.Duration
	sink     Sink
	state    *State

	mu      sync.Mutex
	seen    map[string]struct{}
	polling atomic.Bool
}

// New builds a watcher. interval <= 0 falls back to the 20s default the
// dashboard has always used.
func New(baseURL, token string, interval time.Duration, sink Sink, state *State) *Watcher {
	if interval <= 0 {
		interval = 20 * time.Second
	}
	return &Watcher{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  baseURL,
		token:    token,
		interval: interval,
		sink:     sink,
		state:    state,
		seen:     make(map[string]struct{}),
	}
}

// Run polls once immediately and then on every tick until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	w.Poll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Poll(ctx)
		}
	}
}

// Poll executes one cycle. A cycle still in flight makes this call a no-op,
// so a slow request cannot race a later tick into duplicate alerts. On
// success the seen set is replaced with the incoming ids; on failure it is
// left untouched and the error goes to the sink.
func (w *Watcher) Poll(ctx context.Context) {
	if !w.polling.CompareAndSwap(false, true) {
		return
	}
	defer w.polling.Store(false)

	incoming, err := w.fetchOrders(ctx)
	if err != nil {
		w.sink.Error(err)
		return
	}

	w.mu.Lock()
	var fresh []Order
	next := make(map[string]struct{}, len(incoming))
	for _, o := range incoming {
		next[o.ID] = struct{}{}
		if _, ok := w.seen[o.ID]; !ok {
			fresh = append(fresh, o)
		}
	}
	w.seen = next
	w.mu.Unlock()

	if len(fresh) > 0 {
		w.sink.NewOrders(fresh)
	}
}

// SeenIDs returns a copy of the current seen set.
func (w *Watcher) SeenIDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	ids := make([]string, 0, len(w.seen))
	for id := range w.seen {
		ids = append(ids, id)
	}
	return ids
}

// MarkReviewed persists the operator's handled flag for an order.
func (w *Watcher) MarkReviewed(orderID string, done bool) error {
	if w.state == nil {
		return nil
	}
	return w.state.SetReviewed(orderID, done)
}

func (w *Watcher) fetchOrders(ctx context.Context) ([]Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"/api/admin/orders", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+w.token)
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var payload listResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Orders, nil
}
