package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"time"

	"github.com/Skotchmaster/product_catalog/internal/config"
	"github.com/Skotchmaster/product_catalog/internal/db"
	"github.com/Skotchmaster/product_catalog/internal/events"
	"github.com/Skotchmaster/product_catalog/internal/logging"
	"github.com/Skotchmaster/product_catalog/internal/repo"
	"github.com/Skotchmaster/product_catalog/internal/search"
	"github.com/Skotchmaster/product_catalog/internal/seed"
	"github.com/Skotchmaster/product_catalog/internal/service"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report what would be inserted without writing")
	reindex := flag.Bool("reindex", false, "push every product to Elasticsearch after seeding")
	flag.Parse()

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	slog.SetDefault(logging.New(cfg.LogLevel).With("service", "product_catalog_seed"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gdb, err := db.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() { _ = db.Close(gdb) }()

	if err := db.Migrate(ctx, gdb); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	r := repo.New(gdb)
	cats := &service.CategoryService{Repo: r}
	if _, err := cats.EnsureDefaults(ctx); err != nil {
		log.Fatalf("categories: %v", err)
	}

	res, err := seed.Run(ctx, r, *dryRun)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	if *dryRun {
		log.Printf("dry run: would insert %d products, %d already present", res.Inserted, res.Skipped)
		return
	}
	log.Printf("inserted %d products, skipped %d", res.Inserted, res.Skipped)

	if !*reindex {
		return
	}
	config.MustNonEmpty(cfg.ESURL, "ES_URL")
	idx, err := search.NewClient(search.Config{
		URL:      cfg.ESURL,
		Username: cfg.ESUser,
		Password: cfg.ESPassword,
		Index:    cfg.ESIndex,
	})
	if err != nil {
		log.Fatalf("elasticsearch: %v", err)
	}
	if err := idx.EnsureIndex(ctx); err != nil {
		log.Fatalf("ensure index: %v", err)
	}

	catalog := &service.CatalogService{Repo: r, Index: idx, Events: events.Nop{}}
	n, err := catalog.Reindex(ctx)
	if err != nil {
		log.Fatalf("reindex: %v (indexed %d)", err, n)
	}
	log.Printf("indexed %d products into %s", n, idx.Index())
}
