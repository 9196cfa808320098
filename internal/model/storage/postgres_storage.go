package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	// postgres driver
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-bot/internal/entity/expense"
	"max.ks1230/expense-bot/internal/logger"
)

const (
	dsnTemplate = "user=%s password=%s host=%s dbname=%s sslmode=%s"

	stateTable = "bot_state"
	stateRowID = 1
)

const createStateTable = `
CREATE TABLE IF NOT EXISTS bot_state (
	id         INTEGER PRIMARY KEY,
	payload    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresConfig interface {
	Host() string
	Username() string
	Password() string
	Database() string
	SSLMode() string
}

// PostgresStorage keeps the same JSON document as FileStorage in a single row.
type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(ctx context.Context, config postgresConfig) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", fmt.Sprintf(dsnTemplate,
		config.Username(),
		config.Password(),
		config.Host(),
		config.Database(),
		config.SSLMode()))
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if _, err = db.ExecContext(ctx, createStateTable); err != nil {
		return nil, errors.Wrap(err, "cannot create state table")
	}
	return &PostgresStorage{db}, nil
}

func (s *PostgresStorage) Load(ctx context.Context) expense.State {
	query := psql.Select("payload").
		From(stateTable).
		Where(sq.Eq{"id": stateRowID})

	var payload []byte
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("no stored state, starting empty")
		} else {
			logger.Warn("cannot load state, starting empty", zap.Error(err))
		}
		return expense.NewState()
	}
	return decodeState(payload, stateTable)
}

func (s *PostgresStorage) Save(ctx context.Context, state expense.State) error {
	payload, err := encodeState(state)
	if err != nil {
		return errors.Wrap(err, "save state")
	}

	now := time.Now()
	query := psql.Insert(stateTable).
		Columns("id", "payload", "updated_at").
		Values(stateRowID, payload, now).
		Suffix("ON CONFLICT(id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at")

	_, err = query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "save state")
}

func (s *PostgresStorage) Close() {
	if err := s.db.Close(); err != nil {
		logger.Error("error closing database", zap.Error(err))
	}
}
