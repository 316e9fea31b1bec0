package store

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lox/holdem/internal/game"
)

//go:embed schema.sql
var schema embed.FS

// Postgres stores hands in a PostgreSQL table as JSONB.
type Postgres struct {
	*options
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn. Call Migrate before first use.
func OpenPostgres(ctx context.Context, dsn string, opts ...Option) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return &Postgres{options: newOptions(opts), pool: pool}, nil
}

func (p *Postgres) Close()                         { p.pool.Close() }
func (p *Postgres) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

// Migrate creates the hands table if it does not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	sql, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	if _, err := p.pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("migrating: %w", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, id string) (*game.Hand, error) {
	var data []byte
	err := p.pool.QueryRow(ctx, `SELECT state FROM hands WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading hand %s: %w", id, err)
	}
	return p.decode(id, data)
}

func (p *Postgres) Create(ctx context.Context, h *game.Hand) (string, error) {
	data, err := p.encode(h)
	if err != nil {
		return "", err
	}
	id, err := p.ids.New()
	if err != nil {
		return "", err
	}
	now := p.clock.Now()
	_, err = p.pool.Exec(ctx, `
		INSERT INTO hands(id, round, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
	`, id, h.Round().String(), data, now)
	if err != nil {
		return "", fmt.Errorf("inserting hand: %w", err)
	}
	return id, nil
}

func (p *Postgres) Update(ctx context.Context, id string, h *game.Hand) error {
	data, err := p.encode(h)
	if err != nil {
		return err
	}
	tag, err := p.pool.Exec(ctx, `
		UPDATE hands
		   SET round = $2,
		       state = $3,
		       updated_at = $4
		 WHERE id = $1
	`, id, h.Round().String(), data, p.clock.Now())
	if err != nil {
		return fmt.Errorf("updating hand %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(id)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM hands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting hand %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(id)
	}
	return nil
}

func (p *Postgres) List(ctx context.Context) ([]Summary, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, round, updated_at FROM hands ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing hands: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		var round string
		if err := rows.Scan(&s.ID, &round, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if err := s.Round.UnmarshalText([]byte(round)); err != nil {
			return nil, fmt.Errorf("hand %s: %w", s.ID, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
