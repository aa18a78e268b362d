package reachability

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// DBProber probes the relational backend with the cheapest possible
// read. An authorization or SQL error still proves the server answered.
type DBProber struct {
	db *sqlx.DB
}

func NewDBProber(db *sqlx.DB) *DBProber {
	return &DBProber{db: db}
}

func (p *DBProber) Probe(ctx context.Context) error {
	var one int
	return p.db.GetContext(ctx, &one, "SELECT 1")
}
