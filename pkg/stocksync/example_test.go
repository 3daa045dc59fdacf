package stocksync_test

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/ruudy-sib/stocksync/pkg/stocksync"
)

// Example_basic mounts the receiver on an existing HTTP server.
func Example_basic() {
	cfg := stocksync.DefaultConfig()
	cfg.KintoneDomain = "acme"
	cfg.OrderAppID = "12"
	cfg.OrderAPIToken = "order-token"
	cfg.ItemAppID = "34"
	cfg.ItemAPIToken = "item-token"
	cfg.Timeout = 10 * time.Second

	receiver, err := stocksync.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create receiver: %v", err)
	}
	defer receiver.Close()

	mux := http.NewServeMux()
	mux.Handle("/", receiver.Handler())

	server := &http.Server{Addr: ":3000", Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	log.Fatal(server.ListenAndServe())
}

// Example_handleEvent applies an order change without going through HTTP,
// e.g. when order events arrive from a queue.
func Example_handleEvent() {
	receiver, err := stocksync.New(&stocksync.Config{
		KintoneDomain: "acme",
		OrderAppID:    "12",
		OrderAPIToken: "order-token",
		ItemAppID:     "34",
		ItemAPIToken:  "item-token",
		RedisAddr:     "localhost:6379",
	})
	if err != nil {
		log.Fatalf("Failed to create receiver: %v", err)
	}
	defer receiver.Close()

	ctx := context.Background()
	adjustments, err := receiver.HandleEvent(ctx, stocksync.Event{Kind: stocksync.EventCreate, OrderID: "42"})
	if err != nil {
		log.Fatalf("Failed to handle event: %v", err)
	}

	for _, a := range adjustments {
		fmt.Printf("item %s: %s %.0f -> %.0f (%s)\n", a.ItemID, a.Direction, a.Before, a.After, a.Outcome)
	}

	recent, err := receiver.Recent(ctx, 10)
	if err != nil {
		log.Fatalf("Failed to read journal: %v", err)
	}
	fmt.Printf("%d adjustments journaled\n", len(recent))
}

// Example_dependencyInjection wires the receiver through uber-go/dig.
func Example_dependencyInjection() {
	container := dig.New()

	_ = container.Provide(zap.NewProduction)
	_ = container.Provide(func() *stocksync.Config {
		cfg := stocksync.DefaultConfig()
		cfg.KintoneDomain = "acme"
		cfg.OrderAppID = "12"
		cfg.OrderAPIToken = "order-token"
		cfg.ItemAppID = "34"
		cfg.ItemAPIToken = "item-token"
		return cfg
	})

	if err := stocksync.RegisterWithContainer(container); err != nil {
		log.Fatalf("Failed to register receiver: %v", err)
	}

	err := container.Invoke(func(r *stocksync.Receiver) {
		defer r.Close()
		http.Handle("/", r.Handler())
	})
	if err != nil {
		log.Fatalf("Failed to invoke: %v", err)
	}
}
