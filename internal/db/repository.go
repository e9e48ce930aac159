package db

import (
	"database/sql"
	"fmt"
	"time"

	"pdfsim/internal/compare"
)

// Comparison is one stored comparison result.
type Comparison struct {
	ID           int64
	FirstPath    string
	FirstRange   string
	FirstTokens  int
	SecondPath   string
	SecondRange  string
	SecondTokens int
	Score        float64
	CreatedAt    time.Time
}

// RecordComparison stores res, registering both documents on first sight.
func RecordComparison(dbPath string, res compare.Result, at time.Time) (int64, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	tx, err := conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	firstID, err := upsertDocument(tx, res.First)
	if err != nil {
		return 0, err
	}
	secondID, err := upsertDocument(tx, res.Second)
	if err != nil {
		return 0, err
	}

	out, err := tx.Exec(
		`INSERT INTO comparisons(first_id, first_range, first_tokens, second_id, second_range, second_tokens, score, created_at) VALUES(?,?,?,?,?,?,?,?)`,
		firstID,
		res.First.Range,
		res.First.TokenCount,
		secondID,
		res.Second.Range,
		res.Second.TokenCount,
		res.Score,
		at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert comparison: %w", err)
	}
	id, err := out.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("comparison last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return id, nil
}

func upsertDocument(tx *sql.Tx, doc compare.DocumentSummary) (int64, error) {
	if _, err := tx.Exec(
		`INSERT INTO documents(path, page_count) VALUES(?,?) ON CONFLICT(path) DO UPDATE SET page_count = excluded.page_count`,
		doc.Path,
		doc.PageCount,
	); err != nil {
		return 0, fmt.Errorf("upsert document: %w", err)
	}
	var id int64
	if err := tx.QueryRow(`SELECT id FROM documents WHERE path = ?`, doc.Path).Scan(&id); err != nil {
		return 0, fmt.Errorf("lookup document id: %w", err)
	}
	return id, nil
}

// RecentComparisons returns up to limit comparisons, newest first.
func RecentComparisons(dbPath string, limit int) ([]Comparison, error) {
	if limit <= 0 {
		limit = 20
	}
	conn, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.Query(`
SELECT c.id, f.path, c.first_range, c.first_tokens, s.path, c.second_range, c.second_tokens, c.score, c.created_at
FROM comparisons c
JOIN documents f ON f.id = c.first_id
JOIN documents s ON s.id = c.second_id
ORDER BY c.id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query comparisons: %w", err)
	}
	defer rows.Close()

	var out []Comparison
	for rows.Next() {
		var c Comparison
		var created string
		if err := rows.Scan(&c.ID, &c.FirstPath, &c.FirstRange, &c.FirstTokens, &c.SecondPath, &c.SecondRange, &c.SecondTokens, &c.Score, &created); err != nil {
			return nil, fmt.Errorf("scan comparison: %w", err)
		}
		c.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", created, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comparisons: %w", err)
	}
	return out, nil
}
