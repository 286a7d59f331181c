// Command catalog-ingest loads supplier product feeds into the catalog.
// Feeds are gzip-compressed JSONL files, one item per line. Large feeds
// repeat items heavily, both within and across files, so a bloom filter
// screens out names already ingested before anything reaches the database.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/dailypantry/pantry-assistant/internal/catalog"
	"github.com/dailypantry/pantry-assistant/internal/storage/postgres"
)

const (
	bloomCapacity = 10_000_000
	bloomFPR      = 0.001
	batchSize     = 500
	progressEvery = 100_000
)

type feedItemJSON struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Units    string          `json:"units"`
	Tags     []string        `json:"tags"`
}

func main() {
	var (
		dataDir     string
		databaseURL string
	)

	flag.StringVar(&dataDir, "data-dir", "data/feeds", "directory containing *.jsonl.gz feed files")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, dataDir, databaseURL); err != nil {
		slog.Error("catalog ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("catalog ingest completed successfully")
}

func run(ctx context.Context, dataDir, databaseURL string) error {
	files, err := filepath.Glob(filepath.Join(dataDir, "*.jsonl.gz"))
	if err != nil {
		return errors.Wrap(err, "glob feed files")
	}
	if len(files) == 0 {
		return errors.Errorf("no *.jsonl.gz feed files in %s", dataDir)
	}

	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	store := postgres.NewCatalogStore(pool)

	slog.Info("ingesting feeds", slog.Int("files", len(files)))

	if err := ingestFeeds(ctx, files, store); err != nil {
		return err
	}

	total, err := store.Count(ctx)
	if err != nil {
		return errors.Wrap(err, "count catalog items")
	}
	slog.Info("catalog updated", slog.Int64("total_items", total))
	return nil
}

// ingestFeeds streams all feed files in parallel into a single consumer that
// deduplicates by name and writes batched inserts.
func ingestFeeds(ctx context.Context, files []string, store *postgres.CatalogStore) error {
	items := make(chan catalog.Item, 4*batchSize)

	g, ctx := errgroup.WithContext(ctx)

	// Producers: one goroutine per feed file.
	readers, readCtx := errgroup.WithContext(ctx)
	for _, f := range files {
		readers.Go(streamFeedFile(readCtx, f, items))
	}
	g.Go(func() error {
		defer close(items)
		return readers.Wait()
	})

	// Consumer: deduplicate and batch. The bloom filter is only touched
	// here, it is not safe for concurrent use. A false positive drops an
	// item, which the 0.1% rate makes acceptable for repetitive feeds;
	// the unique index on name catches anything the filter lets through.
	g.Go(func() error {
		seen := bloom.NewWithEstimates(bloomCapacity, bloomFPR)
		batch := make([]catalog.Item, 0, batchSize)
		var kept, skipped uint64

		flush := func() error {
			if len(batch) == 0 {
				return nil
			}
			if err := store.Seed(ctx, batch); err != nil {
				return errors.Wrap(err, "insert batch")
			}
			batch = batch[:0]
			return nil
		}

		for it := range items {
			key := catalog.Normalize(it.Name)
			if seen.TestString(key) {
				skipped++
				continue
			}
			seen.AddString(key)
			kept++

			batch = append(batch, it)
			if len(batch) == batchSize {
				if err := flush(); err != nil {
					return err
				}
			}
			if (kept+skipped)%progressEvery == 0 {
				slog.Info("ingest progress",
					slog.Uint64("kept", kept),
					slog.Uint64("skipped", skipped),
				)
			}
		}
		if err := flush(); err != nil {
			return err
		}

		slog.Info("ingest complete", slog.Uint64("kept", kept), slog.Uint64("skipped", skipped))
		return nil
	})

	return g.Wait()
}

// streamFeedFile parses one gzip JSONL feed and sends valid items downstream.
// Lines that fail to parse or carry a negative price are counted and skipped
// so one bad supplier row does not abort the whole ingest.
func streamFeedFile(ctx context.Context, path string, items chan<- catalog.Item) func() error {
	return func() error {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrapf(err, "open %s", path)
		}
		defer func() { _ = f.Close() }()

		gz, err := pgzip.NewReader(f)
		if err != nil {
			return errors.Wrapf(err, "create gzip reader for %s", path)
		}
		defer func() { _ = gz.Close() }()

		var lines, bad uint64
		scanner := bufio.NewScanner(gz)
		for scanner.Scan() {
			lines++

			var e feedItemJSON
			if err := json.Unmarshal(scanner.Bytes(), &e); err != nil || e.Name == "" || e.Price.IsNegative() {
				bad++
				continue
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case items <- catalog.Item{
				Name:     e.Name,
				Category: e.Category,
				Price:    e.Price,
				Units:    e.Units,
				Tags:     e.Tags,
			}:
			}
		}
		if err := scanner.Err(); err != nil {
			return errors.Wrapf(err, "scan %s", path)
		}

		slog.Info("feed file done",
			slog.String("file", filepath.Base(path)),
			slog.Uint64("lines", lines),
			slog.Uint64("bad_lines", bad),
		)
		return nil
	}
}
