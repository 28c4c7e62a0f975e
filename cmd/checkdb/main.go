// Command checkdb prints the tracking_events layout, the number of stored
// events and the five most recent ones. It reads the same DATABASE_URL as
// the API server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/PratikDhanave/tracking-service/internal/config"
	"github.com/PratikDhanave/tracking-service/internal/store"
)

const recentLimit = 5

func main() {
	fmt.Println("Checking tracking service database...")
	fmt.Println()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "database error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := store.Open(ctx, cfg.DatabaseURL, zap.NewNop())
	if err != nil {
		return err
	}
	defer st.Close()

	return report(ctx, os.Stdout, st, cfg.HTTPAddr)
}

func report(ctx context.Context, w io.Writer, st store.Store, addr string) error {
	if d, ok := st.(store.Describer); ok {
		cols, err := d.Columns(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "Database schema:")
		for _, c := range cols {
			fmt.Fprintf(w, "   %s (%s)\n", c.Name, c.Type)
		}
	}

	count, err := st.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nTotal tracking events: %d\n", count)

	if count == 0 {
		return printExample(w, addr)
	}

	events, err := st.ListRecent(ctx, recentLimit)
	if err != nil {
		return err
	}

	rule := strings.Repeat("-", 100)
	fmt.Fprintf(w, "\nLast %d tracking events:\n%s\n", len(events), rule)
	for _, ev := range events {
		fmt.Fprintf(w, "ID: %s\n", ev.TrackingEventID)
		fmt.Fprintf(w, "Partner: %s | Campaign: %s | Visitor: %s\n", ev.PartnerID, ev.CampaignID, ev.VisitorID)
		fmt.Fprintf(w, "Type: %s | Recorded: %s | Created: %s\n",
			ev.InteractionType, ev.RecordedAt.Format(time.RFC3339Nano), ev.CreatedAt.Format(time.RFC3339Nano))
		fmt.Fprintf(w, "Source: %s\n", ev.SourceURL)
		fmt.Fprintf(w, "Destination: %s\n", ev.DestinationURL)
		fmt.Fprintln(w, rule)
	}
	return nil
}

func printExample(w io.Writer, addr string) error {
	host := addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}

	fmt.Fprintln(w, "\nNo tracking events found. Try sending a POST request to:")
	fmt.Fprintf(w, "   http://%s/api/v1/tracking/events\n\n   Example payload:\n", host)

	example := map[string]string{
		"partner_id":       "google-ads",
		"campaign_id":      "summer-sale-2025",
		"visitor_id":       "user123",
		"interaction_type": "click",
		"source_url":       "https://google.com/ad",
		"destination_url":  "https://mystore.com/products",
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(example)
}
