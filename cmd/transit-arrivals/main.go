package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/theoremus-urban-solutions/transit-arrivals/catalog"
	"github.com/theoremus-urban-solutions/transit-arrivals/config"
	"github.com/theoremus-urban-solutions/transit-arrivals/gtfs"
	"github.com/theoremus-urban-solutions/transit-arrivals/httpclient"
	"github.com/theoremus-urban-solutions/transit-arrivals/internal"
	"github.com/theoremus-urban-solutions/transit-arrivals/realtime"
)

func main() {
	mode := flag.String("mode", "metro", "network: metro|bus|train")
	query := flag.String("stop", "", "stop code or name to resolve")
	trip := flag.String("trip", "", "trip ID to describe")
	flag.Parse()

	internal.InitLogging()
	if err := config.LoadAppConfig(); err != nil {
		log.Fatalf("loading config: %v", err)
	}

	if err := run(context.Background(), *mode, *query, *trip); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, modeName, query, tripID string) error {
	m := gtfs.ModeFromString(modeName)
	if m == gtfs.ModeUnknown {
		return fmt.Errorf("unknown mode %q", modeName)
	}

	store, err := gtfs.Open(config.Config.Dataset.DataDir, config.Config.Dataset.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Initialize(ctx); err != nil {
		return err
	}

	idx, err := catalog.FromStore(ctx, store, m)
	if err != nil {
		return err
	}

	if query != "" {
		stop, err := idx.Resolve(query)
		var nf *catalog.StopNotFoundError
		if errors.As(err, &nf) {
			fmt.Fprintln(os.Stderr, nf.Error())
			os.Exit(1)
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s) code=%s mode=%s\n", stop.Name, stop.ID, stop.Code, stop.Mode)
	}

	if tripID != "" {
		dest, err := store.TripDestination(ctx, tripID)
		if errors.Is(err, gtfs.ErrNotFound) {
			return fmt.Errorf("trip %s not in schedule", tripID)
		}
		if err != nil {
			return err
		}
		stops, err := store.TripStops(ctx, tripID)
		if err != nil {
			return err
		}
		fmt.Printf("trip %s → %s (%d stops)\n", tripID, dest, len(stops))
	}

	if url := config.Config.Feed.VehiclePositionsURL; url != "" {
		httpCfg := config.Config.HTTP
		client := realtime.NewClient(httpclient.NewClient(httpclient.Config{
			Timeout: time.Duration(httpCfg.TimeoutMS) * time.Millisecond,
			Retry: httpclient.RetryConfig{
				MaxRetries: httpCfg.MaxRetries,
				BaseDelay:  time.Duration(httpCfg.BaseDelayMS) * time.Millisecond,
				MaxDelay:   time.Duration(httpCfg.MaxDelayMS) * time.Millisecond,
			},
		}), url)

		feed := realtime.NewFeedCache(client.FetchVehiclePositions,
			time.Duration(config.Config.Feed.TTLMS)*time.Millisecond)

		snap, err := feed.Get(ctx)
		if err != nil {
			return fmt.Errorf("warming feed cache: %w", err)
		}
		stats := feed.Stats()
		fmt.Printf("feed: %d vehicles, header ts %d, cache age %v of %v\n",
			len(snap.Vehicles), snap.HeaderTimestamp, stats.Age, stats.TTL)
	}

	return nil
}
