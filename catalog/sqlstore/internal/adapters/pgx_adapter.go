package adapters

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGXAdapter runs statements on a pgx pool. Reads go to the replica pool if one is set.
type PGXAdapter struct {
	primary *pgxpool.Pool
	replica *pgxpool.Pool
}

// NewPGXAdapter creates a new PGX adapter with a primary pool.
func NewPGXAdapter(pool *pgxpool.Pool) *PGXAdapter {
	return &PGXAdapter{primary: pool}
}

// NewPGXAdapterWithReplica creates a new PGX adapter that reads from replica and writes to pool.
func NewPGXAdapterWithReplica(pool *pgxpool.Pool, replica *pgxpool.Pool) *PGXAdapter {
	return &PGXAdapter{primary: pool, replica: replica}
}

func (p *PGXAdapter) reader() *pgxpool.Pool {
	if p.replica != nil {
		return p.replica
	}

	return p.primary
}

// Query runs a statement that returns rows.
func (p *PGXAdapter) Query(ctx context.Context, query string, args ...any) (DBRows, error) {
	rows, err := p.reader().Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return pgxRows{Rows: rows}, nil
}

// Exec runs a statement without rows on the primary pool.
func (p *PGXAdapter) Exec(ctx context.Context, query string, args ...any) (DBResult, error) {
	tag, err := p.primary.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return pgxResult(tag), nil
}

// pgxRows adds an error result to Close.
type pgxRows struct {
	pgx.Rows
}

func (r pgxRows) Close() error {
	r.Rows.Close()
	return r.Rows.Err()
}

type pgxResult pgconn.CommandTag

func (r pgxResult) RowsAffected() (int64, error) {
	return pgconn.CommandTag(r).RowsAffected(), nil
}

// LastInsertId is not available with pgx, statements use a RETURNING clause instead.
func (r pgxResult) LastInsertId() (int64, error) {
	return 0, ErrLastInsertIDUnsupported
}
