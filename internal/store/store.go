// Package store wraps SQLite access for community board posts and
// donation history.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound reports that a referenced row does not exist.
var ErrNotFound = errors.New("store: not found")

// Store wraps SQLite access for posts and donations.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS posts (
            id TEXT PRIMARY KEY,
            author TEXT,
            title TEXT,
            body TEXT,
            category TEXT,
            likes INTEGER DEFAULT 0,
            created_at TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS donations (
            id TEXT PRIMARY KEY,
            signature TEXT,
            amount_sol REAL,
            cluster TEXT,
            created_at TIMESTAMP
        );`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Post is one community board entry.
type Post struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Category  string    `json:"category"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// Donation is one recorded donation transaction.
type Donation struct {
	ID        string    `json:"id"`
	Signature string    `json:"signature"`
	AmountSOL float64   `json:"amount_sol"`
	Cluster   string    `json:"cluster"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePost inserts a new post and returns it with its assigned id.
func (s *Store) CreatePost(ctx context.Context, author, title, body, category string) (*Post, error) {
	p := &Post{
		ID:        uuid.NewString(),
		Author:    author,
		Title:     title,
		Body:      body,
		Category:  category,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (id, author, title, body, category, likes, created_at) VALUES (?, ?, ?, ?, ?, 0, ?)`,
		p.ID, p.Author, p.Title, p.Body, p.Category, p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPosts returns posts newest first, optionally filtered by
// category. Empty category means all.
func (s *Store) ListPosts(ctx context.Context, category string) ([]Post, error) {
	query := `SELECT id, author, title, body, category, likes, created_at FROM posts`
	args := []any{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Author, &p.Title, &p.Body, &p.Category, &p.Likes, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// LikePost increments a post's like counter.
func (s *Store) LikePost(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE posts SET likes = likes + 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost removes a post.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordDonation appends a confirmed donation to the history.
func (s *Store) RecordDonation(ctx context.Context, signature string, amountSOL float64, cluster string) (*Donation, error) {
	d := &Donation{
		ID:        uuid.NewString(),
		Signature: signature,
		AmountSOL: amountSOL,
		Cluster:   cluster,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO donations (id, signature, amount_sol, cluster, created_at) VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.Signature, d.AmountSOL, d.Cluster, d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ListDonations returns donation history newest first.
func (s *Store) ListDonations(ctx context.Context) ([]Donation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, signature, amount_sol, cluster, created_at FROM donations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donations []Donation
	for rows.Next() {
		var d Donation
		if err := rows.Scan(&d.ID, &d.Signature, &d.AmountSOL, &d.Cluster, &d.CreatedAt); err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}
