package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries holds the statements run against the transactions table.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Transaction is one row of the transactions table as stored.
type Transaction struct {
	ID       int64
	Kind     string
	Category string
	Amount   float64
	Date     string
}

const insertTransaction = `-- name: InsertTransaction :one
INSERT INTO transactions (kind, category, amount, date)
VALUES (?, ?, ?, ?)
RETURNING id
`

type InsertTransactionParams struct {
	Kind     string
	Category string
	Amount   float64
	Date     string
}

func (q *Queries) InsertTransaction(ctx context.Context, arg InsertTransactionParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, insertTransaction,
		arg.Kind,
		arg.Category,
		arg.Amount,
		arg.Date,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const listTransactions = `-- name: ListTransactions :many
SELECT id, kind, category, amount, date FROM transactions
ORDER BY id ASC
`

func (q *Queries) ListTransactions(ctx context.Context) ([]Transaction, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Transaction{}
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(
			&i.ID,
			&i.Kind,
			&i.Category,
			&i.Amount,
			&i.Date,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
