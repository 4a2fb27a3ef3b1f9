// ownerwatch is the terminal counterpart of the owner dashboard: it logs in
// with the owner key (or a saved token), polls the admin orders API and
// prints an alert whenever new orders appear.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medidex/pkg/poller"
)

type consoleSink struct{}

func (consoleSink) NewOrders(orders []poller.Order) {
	suffix := ""
	if len(orders) > 1 {
		suffix = "s"
	}
	fmt.Printf("%d new order%s\n", len(orders), suffix)
	for _, o := range orders {
		fmt.Printf("  %s  %-20s %-20s $%.2f\n", o.ID, o.Name, o.Location, o.Total)
	}
}

func (consoleSink) Error(err error) {
	fmt.Fprintln(os.Stderr, "Error loading orders:", err)
}

func main() {
	apiBase := flag.String("api", "http://localhost:8080", "API base URL")
	key := flag.String("key", "", "owner access key (omit to reuse the saved token)")
	interval := flag.Duration("interval", 20*time.Second, "poll interval")
	statePath := flag.String("state", ".ownerwatch.json", "path of the local state file")
	flag.Parse()

	state, err := poller.LoadState(*statePath)
	if err != nil {
		log.Fatal("state file:", err)
	}

	token := state.Token()
	if *key != "" {
		token, err = login(*apiBase, *key)
		if err != nil {
			log.Fatal("login failed:", err)
		}
		if err := state.SetToken(token); err != nil {
			log.Println("could not save token:", err)
		}
	}
	if token == "" {
		log.Fatal("no saved token; pass -key to log in")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := poller.New(*apiBase, token, *interval, consoleSink{}, state)
	log.Printf("watching %s every %s", *apiBase, *interval)
	watcher.Run(ctx)
}

func login(apiBase, key string) (string, error) {
	body, err := json.Marshal(map[string]string{"key": key})
	if err != nil {
		return "", err
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(apiBase+"/api/admin/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	return payload.Token, nil
}
