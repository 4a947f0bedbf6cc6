package handler

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
	"go.uber.org/zap"

	"depot-rest-api/internal/service"
)

var handlerDBSeq atomic.Uint64

const handlerTestSchema = `
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
    PRIMARY KEY (rid, pid)
);
CREATE TABLE orders (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id   TEXT NOT NULL UNIQUE,
    cid        INTEGER NOT NULL,
    order_time TIMESTAMP NOT NULL,
    status     TEXT NOT NULL DEFAULT 'unpaid'
);
CREATE TABLE order_items (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id   INTEGER NOT NULL,
    pid        INTEGER NOT NULL,
    amount     INTEGER NOT NULL,
    unit_price INTEGER NOT NULL
);
`

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handlertest%d?mode=memory&cache=shared", handlerDBSeq.Add(1))
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(handlerTestSchema)
	require.NoError(t, err)
	return db
}

func testTokens() *service.TokenService {
	return service.NewTokenService([]byte("test-secret"), 15*time.Minute)
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error
}

func TestHealth(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
}
