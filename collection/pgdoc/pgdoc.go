// Package pgdoc provides a PostgreSQL-backed filedock.Collection. Each
// record is stored as a JSONB document in a shared file_records table,
// keyed by collection name and identifier; modifiers translate to targeted
// jsonb_set / #- updates so a save never overwrites the whole document.
//
// Schema migrations are embedded and applied with goose, see RunMigrations.
package pgdoc

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/filedock"
	"github.com/dmitrijs2005/filedock/collection/pgdoc/migrations"
	"github.com/dmitrijs2005/filedock/internal/dbx"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Collection implements filedock.Collection over a dbx.DBTX (*sql.DB or
// *sql.Tx).
type Collection struct {
	name string
	db   dbx.DBTX

	mu     sync.RWMutex
	stores map[string]filedock.Store
}

// New constructs a collection bound to the given DBTX.
func New(name string, db dbx.DBTX) *Collection {
	return &Collection{
		name:   name,
		db:     db,
		stores: make(map[string]filedock.Store),
	}
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// Insert stores a document and returns its identifier, assigning a fresh
// one when the document has none. The identifier lives in its own column;
// the JSONB payload holds only the metadata blocks.
func (c *Collection) Insert(ctx context.Context, doc *filedock.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("insert: nil document")
	}
	cp := doc.Clone()
	id := cp.ID
	if id == "" {
		id = uuid.NewString()
	}
	cp.ID = ""

	raw, err := json.Marshal(cp)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}

	query := `INSERT INTO file_records (collection, id, doc) VALUES ($1, $2, $3)`
	if _, err := c.db.ExecContext(ctx, query, c.name, id, raw); err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// FindOne loads the document with the given identifier.
func (c *Collection) FindOne(ctx context.Context, id string) (*filedock.Document, error) {
	query := `SELECT doc FROM file_records WHERE collection=$1 AND id=$2`

	var raw []byte
	err := c.db.QueryRowContext(ctx, query, c.name, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, filedock.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	doc := &filedock.Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	doc.ID = id
	return doc, nil
}

// Update applies a field-level modifier. Each dotted path becomes a JSONB
// path expression; set entries use jsonb_set with create-missing enabled,
// unset entries use the #- operator. When the collection holds a *sql.DB
// all entries run in one transaction, so a modifier applies atomically.
func (c *Collection) Update(ctx context.Context, id string, mod filedock.Modifier) error {
	if db, ok := c.db.(*sql.DB); ok {
		return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return c.applyModifier(ctx, tx, id, mod)
		})
	}
	// Already a transactional handle; the caller owns commit/rollback.
	return c.applyModifier(ctx, c.db, id, mod)
}

func (c *Collection) applyModifier(ctx context.Context, db dbx.DBTX, id string, mod filedock.Modifier) error {
	for p, v := range mod.Set {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", p, err)
		}
		query := `UPDATE file_records SET doc = jsonb_set(doc, $3::text[], $4::jsonb, true), updated_at = now()
			WHERE collection=$1 AND id=$2`
		if err := c.exec(ctx, db, query, c.name, id, jsonbPath(p), raw); err != nil {
			return fmt.Errorf("set %s: %w", p, err)
		}
	}
	for _, p := range mod.Unset {
		query := `UPDATE file_records SET doc = doc #- $3::text[], updated_at = now()
			WHERE collection=$1 AND id=$2`
		if err := c.exec(ctx, db, query, c.name, id, jsonbPath(p)); err != nil {
			return fmt.Errorf("unset %s: %w", p, err)
		}
	}
	return nil
}

// Remove deletes the document with the given identifier.
func (c *Collection) Remove(ctx context.Context, id string) error {
	query := `DELETE FROM file_records WHERE collection=$1 AND id=$2`
	return c.exec(ctx, c.db, query, c.name, id)
}

// RegisterStore makes a storage backend reachable through GetStore.
func (c *Collection) RegisterStore(s filedock.Store) {
	c.mu.Lock()
	c.stores[s.Name()] = s
	c.mu.Unlock()
}

// GetStore resolves a registered storage backend by name.
func (c *Collection) GetStore(name string) (filedock.Store, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.stores[name]
	if !ok {
		return nil, fmt.Errorf("store %q: %w", name, filedock.ErrNotFound)
	}
	return s, nil
}

// exec runs a statement that must affect exactly one row; zero affected
// rows surface as ErrNotFound.
func (c *Collection) exec(ctx context.Context, db dbx.DBTX, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return filedock.ErrNotFound
	}
	return nil
}

// jsonbPath converts a dotted path ("copies.thumbs") into a Postgres text
// array literal ("{copies,thumbs}").
func jsonbPath(p string) string {
	return "{" + strings.Join(strings.Split(p, "."), ",") + "}"
}
