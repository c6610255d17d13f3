package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TechXTT/ydbc"
	"github.com/TechXTT/ydbc/pkg/logutil"
	"github.com/TechXTT/ydbc/pkg/migrate"
	"github.com/TechXTT/ydbc/pkg/spi"
	"github.com/TechXTT/ydbc/pkg/sqlsession"
)

func main() {
	ctx := context.Background()
	lg, err := logutil.New("info", "console")
	if err != nil {
		panic(err)
	}

	// 1) Open a SQLite-backed session provider
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "file:example.db?_foreign_keys=on"
	}
	provider, err := sqlsession.Open("sqlite3", dsn, lg)
	if err != nil {
		panic(fmt.Errorf("connect: %w", err))
	}
	defer provider.Close()

	conn, err := ydbc.NewConnectionFactory(provider, ydbc.WithLogger(lg)).Create(ctx)
	if err != nil {
		panic(fmt.Errorf("create connection: %w", err))
	}
	defer conn.Close(ctx)

	// 2) Run migrations in "migrations/"
	mgr, err := migrate.NewManager(conn, "migrations", lg)
	if err != nil {
		panic(fmt.Errorf("load migrations: %w", err))
	}
	if err := mgr.Up(ctx); err != nil {
		panic(fmt.Errorf("migrate up: %w", err))
	}
	fmt.Println("Migrations applied")

	// 3) Create a user inside a transaction
	id := uuid.New()
	if err := conn.BeginTransaction(ctx); err != nil {
		panic(err)
	}
	insert := conn.CreateStatement(`INSERT INTO users (id, name, email, balance, created_at)
        VALUES ($id, $name, $email, $balance, $created_at)`)
	binds := map[string]any{
		"id":         id,
		"name":       spi.In(spi.VarChar, "Alice"),
		"email":      "alice@example.com",
		"balance":    decimal.RequireFromString("10.50"),
		"created_at": time.Now(),
	}
	for name, v := range binds {
		if err := insert.Bind(name, v); err != nil {
			panic(fmt.Errorf("bind %s: %w", name, err))
		}
	}
	if _, err := insert.Execute(ctx).Await(ctx); err != nil {
		_ = conn.RollbackTransaction(ctx)
		panic(fmt.Errorf("insert user: %w", err))
	}
	if err := conn.CommitTransaction(ctx); err != nil {
		panic(err)
	}
	fmt.Printf("Created user %s\n", id)

	// 4) Query it back in autocommit mode
	sel := conn.CreateStatement(`SELECT name, email, balance FROM users WHERE id = $id`)
	if err := sel.Bind("id", id); err != nil {
		panic(err)
	}
	res, err := sel.Execute(ctx).Await(ctx)
	if err != nil {
		panic(fmt.Errorf("fetch user: %w", err))
	}
	for _, row := range res.ResultSets()[0].Rows {
		fmt.Printf("Fetched user: %v <%v> balance %v\n", row[0], row[1], row[2])
	}
}
