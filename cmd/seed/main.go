// Seed applies the initial schema and upserts the sale catalog. Run it once
// against a fresh database before opening the sale.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/daiya0277-lgtm/gyoza-app/internal/infra/db"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/config"
)

type seedProduct struct {
	id        string
	name      string
	unitPrice int32
	capacity  int32
	sortOrder int32
}

var catalog = []seedProduct{
	{id: "yaki", name: "焼き餃子", unitPrice: 250, capacity: 50, sortOrder: 1},
	{id: "craft", name: "クラフト餃子", unitPrice: 300, capacity: 50, sortOrder: 2},
	{id: "cheese", name: "チーズ餃子", unitPrice: 350, capacity: 50, sortOrder: 3},
}

func main() {
	schemaPath := flag.String("schema", "migrations/001_initial_schema.sql", "schema file to apply before seeding (empty to skip)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("設定の読み込みに失敗しました", "error", err)
		os.Exit(1)
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		slog.Error("データベース接続に失敗しました", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *schemaPath != "" {
		schema, err := os.ReadFile(*schemaPath)
		if err != nil {
			slog.Error("スキーマファイルの読み込みに失敗しました", "path", *schemaPath, "error", err)
			os.Exit(1)
		}
		if _, err := pool.Exec(ctx, string(schema)); err != nil {
			slog.Error("スキーマの適用に失敗しました", "error", err)
			os.Exit(1)
		}
		slog.Info("スキーマを適用しました", "path", *schemaPath)
	}

	// Upsert keeps re-runs safe: prices and capacity refresh, but a live
	// remaining_stock is never overwritten.
	const upsert = `
		INSERT INTO products (id, name, unit_price, total_capacity, remaining_stock, sort_order)
		VALUES ($1, $2, $3, $4, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			unit_price = EXCLUDED.unit_price,
			total_capacity = EXCLUDED.total_capacity,
			sort_order = EXCLUDED.sort_order
	`
	for _, p := range catalog {
		if _, err := pool.Exec(ctx, upsert, p.id, p.name, p.unitPrice, p.capacity, p.sortOrder); err != nil {
			slog.Error("商品の投入に失敗しました", "product_id", p.id, "error", err)
			os.Exit(1)
		}
		slog.Info("商品を投入しました", "product_id", p.id, "capacity", p.capacity)
	}

	slog.Info("シードが完了しました", "products", len(catalog))
}
