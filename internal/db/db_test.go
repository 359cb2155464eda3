package db

import (
	"context"
	"testing"
)

func TestOpenSQLiteMigratesIdempotently(t *testing.T) {
	ctx := context.Background()
	conn, err := Open(ctx, DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer conn.Close()

	if err := RunMigrations(ctx, conn); err != nil {
		t.Fatalf("second migration: %v", err)
	}
	var n int
	if err := conn.GetContext(ctx, &n, `SELECT COUNT(*) FROM diary_entries`); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("fresh table has %d rows", n)
	}
	if got := conn.Rebind(`SELECT 1 WHERE 1 = ?`); got != `SELECT 1 WHERE 1 = ?` {
		t.Errorf("sqlite rebind = %q", got)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), "mysql", "x"); err == nil {
		t.Fatal("expected error")
	}
}
