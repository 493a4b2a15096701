// Package catalog stores products and the ordered media references of their
// galleries in SQLite.
package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/llehouerou/vitrine/internal/db"
)

// ErrProductNotFound is returned when no product has the requested SKU.
var ErrProductNotFound = errors.New("product not found")

// Product is a catalog entry with its gallery.
type Product struct {
	SKU         string
	Title       string
	Description string
	Media       []string // ordered image references
}

// Summary is a product without its media list.
type Summary struct {
	SKU        string
	Title      string
	MediaCount int
}

// Catalog is the product store.
type Catalog struct {
	db *sql.DB
}

// Open opens the catalog at path, creating it if needed. Pass db.Memory for
// a throwaway catalog.
func Open(path string) (*Catalog, error) {
	conn, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Catalog{db: conn}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Product returns the product with sku and its media in gallery order.
func (c *Catalog) Product(sku string) (*Product, error) {
	sku = strings.TrimSpace(sku)
	var p Product
	var desc sql.NullString
	err := c.db.QueryRow(`
		SELECT sku, title, description FROM products WHERE sku = ?
	`, sku).Scan(&p.SKU, &p.Title, &desc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, sku)
	}
	if err != nil {
		return nil, err
	}
	p.Description = db.NullStringValue(desc)

	rows, err := c.db.Query(`
		SELECT ref FROM product_media WHERE sku = ? ORDER BY position
	`, sku)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, err
		}
		p.Media = append(p.Media, ref)
	}
	return &p, rows.Err()
}

// Products lists every product ordered by SKU.
func (c *Catalog) Products() ([]Summary, error) {
	rows, err := c.db.Query(`
		SELECT p.sku, p.title, COUNT(m.ref)
		FROM products p
		LEFT JOIN product_media m ON m.sku = p.sku
		GROUP BY p.sku
		ORDER BY p.sku COLLATE NOCASE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.SKU, &s.Title, &s.MediaCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SaveProduct inserts p or replaces the product with the same SKU, including
// its whole media list.
func (c *Catalog) SaveProduct(p Product) error {
	sku := strings.TrimSpace(p.SKU)
	if sku == "" {
		return errors.New("product SKU is empty")
	}
	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = sku
	}
	now := time.Now().Unix()

	return db.WithTx(c.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO products (sku, title, description, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(sku) DO UPDATE SET
				title = excluded.title,
				description = excluded.description,
				updated_at = excluded.updated_at
		`, sku, title, db.NullString(p.Description), now, now)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(`DELETE FROM product_media WHERE sku = ?`, sku); err != nil {
			return err
		}
		for i, ref := range p.Media {
			if _, err := tx.Exec(`
				INSERT INTO product_media (sku, position, ref) VALUES (?, ?, ?)
			`, sku, i, ref); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteProduct removes the product and its media.
func (c *Catalog) DeleteProduct(sku string) error {
	sku = strings.TrimSpace(sku)
	res, err := c.db.Exec(`DELETE FROM products WHERE sku = ?`, sku)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrProductNotFound, sku)
	}
	return nil
}
