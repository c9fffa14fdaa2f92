package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/matthewbaird/adminkit/internal/dashboard"
	"github.com/matthewbaird/adminkit/internal/mapping"
	"github.com/matthewbaird/adminkit/internal/schema"
	"github.com/matthewbaird/adminkit/internal/seed"
	"github.com/matthewbaird/adminkit/internal/server"
	"github.com/matthewbaird/adminkit/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "file:adminkit.db?_pragma=foreign_keys(1)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	db.SetMaxOpenConns(1)
	defer db.Close()

	if err := seed.Run(ctx, db); err != nil {
		log.Fatalf("seeding demo data: %v", err)
	}

	schemaDir := os.Getenv("SCHEMA_DIR")
	if schemaDir == "" {
		schemaDir = "schemas"
	}
	schemas, err := schema.Load(schemaDir)
	if err != nil {
		log.Fatalf("loading schemas from %s: %v", schemaDir, err)
	}

	registry, err := buildRegistry(schemas)
	if err != nil {
		log.Fatalf("building dashboards: %v", err)
	}
	log.Printf("registered resources: %v", registry.Names())

	port := 8080
	if p := os.Getenv("PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	cfg := server.Config{
		Port:     port,
		Registry: registry,
		Store:    storage.New(db, ""),
	}
	if err := server.Run(ctx, cfg); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// buildRegistry declares the demo dashboards and freezes them. Any
// mapping misconfiguration aborts startup here, before requests.
func buildRegistry(schemas map[string]*schema.Schema) (*dashboard.Registry, error) {
	for _, name := range []string{"posts", "products"} {
		if schemas[name] == nil {
			return nil, fmt.Errorf("schema %q not found in schema dir", name)
		}
	}

	// Unconstrained strings render as textareas unless a field says
	// otherwise; everything else falls through to the defaults.
	global, err := mapping.FuncSource(func(t schema.TypeTag, c schema.Constraints) mapping.Widget {
		if t.Kind == schema.KindString && !c.HasEnumValues() {
			return mapping.WidgetTextarea
		}
		return ""
	})
	if err != nil {
		return nil, err
	}
	cfg := mapping.Config{Global: global}

	registry := dashboard.NewRegistry()

	posts, err := dashboard.NewBuilder(schemas["posts"]).
		Field("title", dashboard.FieldOpts{Widget: mapping.WidgetText, Searchable: true}).
		Field("body", dashboard.FieldOpts{Searchable: true, Except: []string{"index"}}).
		Field("status", dashboard.FieldOpts{}).
		Field("rating", dashboard.FieldOpts{}).
		Field("score", dashboard.FieldOpts{}).
		Field("featured", dashboard.FieldOpts{}).
		Field("published_on", dashboard.FieldOpts{}).
		Field("created_at", dashboard.FieldOpts{Only: []string{"show"}}).
		Field("author_id", dashboard.FieldOpts{Label: "Author"}).
		Filter("status", dashboard.FilterOpts{}).
		Filter("rating", dashboard.FilterOpts{}).
		Filter("featured", dashboard.FilterOpts{}).
		Filter("published_on", dashboard.FilterOpts{}).
		DefaultSort("created_at", true).
		Build(cfg)
	if err != nil {
		return nil, err
	}
	registry.Register(posts)

	products, err := dashboard.NewBuilder(schemas["products"]).
		Field("name", dashboard.FieldOpts{Widget: mapping.WidgetText, Searchable: true}).
		Field("price", dashboard.FieldOpts{}).
		Field("state", dashboard.FieldOpts{}).
		Field("created_at", dashboard.FieldOpts{}).
		Filter("state", dashboard.FilterOpts{}).
		Filter("price", dashboard.FilterOpts{}).
		Filter("created_at", dashboard.FilterOpts{}).
		DefaultSort("name", false).
		Build(cfg)
	if err != nil {
		return nil, err
	}
	registry.Register(products)

	return registry, nil
}
