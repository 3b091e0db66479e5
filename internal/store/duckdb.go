package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"

	"github.com/tradeforge/vela/internal/types"
	"github.com/tradeforge/vela/pkg/errors"
)

// DuckDBRecorder persists trading activity to a DuckDB database. Pass an
// empty path for an in-memory database.
type DuckDBRecorder struct {
	db *sql.DB
	sq squirrel.StatementBuilderType
}

// NewDuckDBRecorder opens the database and creates the schema.
func NewDuckDBRecorder(path string) (*DuckDBRecorder, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStoreOpenFailed, err, "failed to open duckdb at %s", path)
	}

	r := &DuckDBRecorder{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	if err := r.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return r, nil
}

func (r *DuckDBRecorder) initialize() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			order_id TEXT,
			agent_id TEXT,
			symbol TEXT,
			side TEXT,
			quantity DOUBLE,
			price DOUBLE,
			fill_price DOUBLE,
			status TEXT,
			timestamp TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			transaction_id TEXT,
			agent_id TEXT,
			symbol TEXT,
			open_time TIMESTAMP,
			close_time TIMESTAMP,
			entry_price DOUBLE,
			exit_price DOUBLE,
			quantity DOUBLE,
			reason_buy TEXT,
			reason_sell TEXT,
			result TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS agent_events (
			agent_id TEXT,
			event TEXT,
			detail TEXT,
			recorded_at TIMESTAMP DEFAULT current_timestamp
		)`,
		`CREATE TABLE IF NOT EXISTS candles (
			symbol TEXT,
			timeframe TEXT,
			time TIMESTAMP,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE,
			PRIMARY KEY (symbol, timeframe, time)
		)`,
	}

	for _, stmt := range statements {
		if _, err := r.db.Exec(stmt); err != nil {
			return errors.Wrap(errors.ErrCodeStoreOpenFailed, "failed to create schema", err)
		}
	}

	return nil
}

// RecordOrder appends one order row. Orders are recorded on every status
// change, so the same order id can appear more than once.
func (r *DuckDBRecorder) RecordOrder(ctx context.Context, agentID string, order types.Order) error {
	query := r.sq.
		Insert("orders").
		Columns("order_id", "agent_id", "symbol", "side", "quantity", "price", "fill_price", "status", "timestamp").
		Values(
			order.OrderID, agentID, order.Symbol, order.Side, order.Quantity,
			order.Price, order.FillPrice, order.Status, order.Timestamp,
		).
		RunWith(r.db)

	if _, err := query.ExecContext(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to insert order", err)
	}

	return nil
}

// RecordTransaction appends one closed round trip.
func (r *DuckDBRecorder) RecordTransaction(ctx context.Context, agentID string, tx types.Transaction) error {
	query := r.sq.
		Insert("transactions").
		Columns(
			"transaction_id", "agent_id", "symbol", "open_time", "close_time",
			"entry_price", "exit_price", "quantity", "reason_buy", "reason_sell", "result",
		).
		Values(
			tx.ID, agentID, tx.Symbol, tx.OpenTime, tx.CloseTime,
			tx.EntryPrice, tx.ExitPrice, tx.Quantity, tx.ReasonBuy, tx.ReasonSell, tx.Result,
		).
		RunWith(r.db)

	if _, err := query.ExecContext(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to insert transaction", err)
	}

	return nil
}

// RecordEvent appends one lifecycle event, such as a stop-trading latch.
func (r *DuckDBRecorder) RecordEvent(ctx context.Context, agentID, event, detail string) error {
	query := r.sq.
		Insert("agent_events").
		Columns("agent_id", "event", "detail").
		Values(agentID, event, detail).
		RunWith(r.db)

	if _, err := query.ExecContext(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to insert event", err)
	}

	return nil
}

// RecordCandles upserts a batch of candles, keyed by symbol, timeframe, and
// period time so backfills can be re-run over overlapping ranges.
func (r *DuckDBRecorder) RecordCandles(ctx context.Context, symbol string, timeframe types.Timeframe, candles []types.Candle) error {
	if len(candles) == 0 {
		return nil
	}

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to begin transaction", err)
	}

	for _, candle := range candles {
		query := r.sq.
			Insert("candles").
			Columns("symbol", "timeframe", "time", "open", "high", "low", "close", "volume").
			Values(symbol, timeframe, candle.Time, candle.Open, candle.High, candle.Low, candle.Close, candle.Volume).
			Suffix("ON CONFLICT (symbol, timeframe, time) DO NOTHING").
			RunWith(dbTx)

		if _, err := query.ExecContext(ctx); err != nil {
			dbTx.Rollback()

			return errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to insert candle", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to commit candles", err)
	}

	return nil
}

// Orders returns every recorded order for one agent, oldest first.
func (r *DuckDBRecorder) Orders(ctx context.Context, agentID string) ([]types.Order, error) {
	query := r.sq.
		Select("order_id", "symbol", "side", "quantity", "price", "fill_price", "status", "timestamp").
		From("orders").
		Where(squirrel.Eq{"agent_id": agentID}).
		OrderBy("timestamp ASC").
		RunWith(r.db)

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "failed to query orders", err)
	}
	defer rows.Close()

	var orders []types.Order

	for rows.Next() {
		var order types.Order

		err := rows.Scan(
			&order.OrderID, &order.Symbol, &order.Side, &order.Quantity,
			&order.Price, &order.FillPrice, &order.Status, &order.Timestamp,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "failed to scan order", err)
		}

		orders = append(orders, order)
	}

	return orders, rows.Err()
}

// Transactions returns every closed round trip for one agent, oldest first.
func (r *DuckDBRecorder) Transactions(ctx context.Context, agentID string) ([]types.Transaction, error) {
	query := r.sq.
		Select(
			"transaction_id", "symbol", "open_time", "close_time",
			"entry_price", "exit_price", "quantity", "reason_buy", "reason_sell", "result",
		).
		From("transactions").
		Where(squirrel.Eq{"agent_id": agentID}).
		OrderBy("close_time ASC").
		RunWith(r.db)

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "failed to query transactions", err)
	}
	defer rows.Close()

	var transactions []types.Transaction

	for rows.Next() {
		var tx types.Transaction

		err := rows.Scan(
			&tx.ID, &tx.Symbol, &tx.OpenTime, &tx.CloseTime,
			&tx.EntryPrice, &tx.ExitPrice, &tx.Quantity, &tx.ReasonBuy, &tx.ReasonSell, &tx.Result,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "failed to scan transaction", err)
		}

		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

// Candles returns the stored candles for one symbol and timeframe between
// from and to inclusive, oldest first.
func (r *DuckDBRecorder) Candles(ctx context.Context, symbol string, timeframe types.Timeframe, from, to time.Time) ([]types.Candle, error) {
	query := r.sq.
		Select("time", "open", "high", "low", "close", "volume").
		From("candles").
		Where(squirrel.Eq{"symbol": symbol, "timeframe": timeframe}).
		Where(squirrel.GtOrEq{"time": from}).
		Where(squirrel.LtOrEq{"time": to}).
		OrderBy("time ASC").
		RunWith(r.db)

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "failed to query candles", err)
	}
	defer rows.Close()

	var candles []types.Candle

	for rows.Next() {
		var candle types.Candle

		err := rows.Scan(&candle.Time, &candle.Open, &candle.High, &candle.Low, &candle.Close, &candle.Volume)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "failed to scan candle", err)
		}

		candles = append(candles, candle)
	}

	return candles, rows.Err()
}

// Close closes the underlying database.
func (r *DuckDBRecorder) Close() error {
	return r.db.Close()
}
