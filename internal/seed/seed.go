// Package seed provides demo tables and data for the admin server.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

const createPosts = `
CREATE TABLE IF NOT EXISTS posts (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	body         TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL DEFAULT 'draft',
	rating       INTEGER NOT NULL DEFAULT 0,
	score        REAL NOT NULL DEFAULT 0,
	featured     INTEGER NOT NULL DEFAULT 0,
	published_on TEXT,
	created_at   TEXT NOT NULL,
	author_id    TEXT NOT NULL
)`

const createProducts = `
CREATE TABLE IF NOT EXISTS products (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	price      TEXT NOT NULL DEFAULT '0',
	state      TEXT NOT NULL DEFAULT 'pending',
	created_at TEXT NOT NULL
)`

type post struct {
	title       string
	status      string
	rating      int
	score       float64
	featured    bool
	publishedOn string
	author      string
}

var demoPosts = []post{
	{"Getting Started", "published", 5, 4.7, true, "2026-01-10", "ada"},
	{"Range Filters Explained", "published", 4, 4.1, false, "2026-02-02", "ada"},
	{"Unfinished Thoughts", "draft", 2, 1.3, false, "", "grace"},
	{"Archived Notes", "archived", 3, 2.8, false, "2025-11-30", "grace"},
	{"Release Checklist", "draft", 4, 3.9, true, "", "linus"},
}

// Run creates the demo tables and inserts demo rows. Seeding is
// idempotent: existing rows are left alone.
func Run(ctx context.Context, db *sql.DB) error {
	for _, stmt := range []string{createPosts, createProducts} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating demo tables: %w", err)
		}
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		return fmt.Errorf("checking posts: %w", err)
	}
	if count > 0 {
		log.Printf("demo data already seeded (%d posts), skipping", count)
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, p := range demoPosts {
		var publishedOn any
		if p.publishedOn != "" {
			publishedOn = p.publishedOn
		}
		_, err := db.ExecContext(ctx,
			`INSERT INTO posts (id, title, status, rating, score, featured, published_on, created_at, author_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), p.title, p.status, p.rating, p.score, p.featured, publishedOn, now, p.author)
		if err != nil {
			return fmt.Errorf("seeding post %q: %w", p.title, err)
		}
	}

	products := []struct {
		name, price, state string
	}{
		{"Standard Plan", "19.00", "active"},
		{"Pro Plan", "49.00", "active"},
		{"Legacy Plan", "9.00", "retired"},
	}
	for _, p := range products {
		_, err := db.ExecContext(ctx,
			"INSERT INTO products (id, name, price, state, created_at) VALUES (?, ?, ?, ?, ?)",
			uuid.NewString(), p.name, p.price, p.state, now)
		if err != nil {
			return fmt.Errorf("seeding product %q: %w", p.name, err)
		}
	}

	log.Printf("seeded %d posts and %d products", len(demoPosts), len(products))
	return nil
}
