package catalog

import "database/sql"

func initSchema(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			sku TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS product_media (
			sku TEXT NOT NULL REFERENCES products(sku) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			ref TEXT NOT NULL,
			PRIMARY KEY (sku, position)
		);
	`)
	return err
}
