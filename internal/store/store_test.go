package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var testDBSeq atomic.Uint64

// Tests run against an in-memory SQLite database; the store's SQL is plain
// enough (? placeholders, no MySQL-only syntax) to behave identically on both
// engines. One open connection keeps a shared-cache memory DB alive and
// serializes writers the way the bounded production pool does.
const testSchema = `
CREATE TABLE users (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    name        TEXT NOT NULL UNIQUE,
    password    TEXT NOT NULL,
    flag        TEXT NOT NULL DEFAULT 'operator',
    description TEXT
);
CREATE TABLE clients (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    name          TEXT NOT NULL UNIQUE,
    password      TEXT NOT NULL,
    ctype         TEXT NOT NULL DEFAULT 'normal',
    contactor     TEXT NOT NULL DEFAULT '',
    contactor_tel TEXT NOT NULL DEFAULT '',
    email         TEXT NOT NULL DEFAULT '',
    description   TEXT NOT NULL DEFAULT ''
);
CREATE TABLE repository (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    name        TEXT NOT NULL,
    description TEXT
);
CREATE TABLE products (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    name       TEXT NOT NULL,
    size       TEXT NOT NULL DEFAULT '',
    price      INTEGER NOT NULL DEFAULT 0,
    max_amount INTEGER NOT NULL DEFAULT 0,
    min_amount INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE inventory (
    rid    INTEGER NOT NULL,
    pid    INTEGER NOT NULL,
    amount INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (rid, pid),
    FOREIGN KEY (rid) REFERENCES repository (id),
    FOREIGN KEY (pid) REFERENCES products (id)
);
CREATE TABLE orders (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id   TEXT NOT NULL UNIQUE,
    cid        INTEGER NOT NULL,
    order_time TIMESTAMP NOT NULL,
    status     TEXT NOT NULL DEFAULT 'unpaid',
    FOREIGN KEY (cid) REFERENCES clients (id)
);
CREATE TABLE order_items (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id   INTEGER NOT NULL,
    pid        INTEGER NOT NULL,
    amount     INTEGER NOT NULL,
    unit_price INTEGER NOT NULL,
    FOREIGN KEY (order_id) REFERENCES orders (id) ON DELETE CASCADE,
    FOREIGN KEY (pid) REFERENCES products (id)
);
`

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:storetest%d?mode=memory&cache=shared&_pragma=foreign_keys(1)",
		testDBSeq.Add(1))
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return db
}

func seedRepository(t *testing.T, db *sql.DB, name string) uint64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO repository (name) VALUES (?)`, name)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}

func seedProduct(t *testing.T, db *sql.DB, name string, price uint64) uint64 {
	t.Helper()
	res, err := db.Exec(
		`INSERT INTO products (name, size, price, max_amount, min_amount) VALUES (?, 'box', ?, 100, 1)`,
		name, price)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}

func seedClient(t *testing.T, db *sql.DB, name string) uint64 {
	t.Helper()
	res, err := db.Exec(
		`INSERT INTO clients (name, password, ctype) VALUES (?, 'x', 'normal')`, name)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}

func stockAmount(t *testing.T, db *sql.DB, rid, pid uint64) uint64 {
	t.Helper()
	var amount uint64
	err := db.QueryRowContext(context.Background(),
		`SELECT amount FROM inventory WHERE rid = ? AND pid = ?`, rid, pid).Scan(&amount)
	require.NoError(t, err)
	return amount
}
