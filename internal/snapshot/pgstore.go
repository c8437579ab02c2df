package snapshot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	selectBalances = "SELECT id, balance FROM accounts;"
	deleteBalances = "DELETE FROM accounts;"
	insertBalance  = "INSERT INTO accounts(id, balance) VALUES($1,$2);"
)

type PgConfig struct {
	User string
	Pass string
	Name string
	Host string
	Port int
}

func NewPgConnection(cfg PgConfig) (*sqlx.DB, error) {
	conn := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=disable",
		cfg.User, cfg.Pass, cfg.Name, cfg.Host, cfg.Port)

	log.Info("connecting to database...")
	db, err := sqlx.Connect("postgres", conn)
	if err != nil {
		return nil, err
	}

	log.Info("verifying connection...")
	if err := db.Ping(); err != nil {
		return nil, err
	}

	log.Info("verified postgres connection")
	return db, nil
}

// PgStore keeps the snapshot in an accounts table. Each save rewrites the
// whole table inside one transaction, so readers never observe a
// half-written snapshot.
type PgStore struct {
	DB *sqlx.DB
}

func (s *PgStore) Load() (map[string]float64, error) {
	rows := make([]struct {
		ID      string  `db:"id"`
		Balance float64 `db:"balance"`
	}, 0)

	if err := s.DB.Select(&rows, selectBalances); err != nil {
		return nil, errors.Wrap(err, "select account rows")
	}

	if len(rows) == 0 {
		return nil, ErrNoSnapshot
	}

	balances := make(map[string]float64, len(rows))
	for _, r := range rows {
		balances[r.ID] = r.Balance
	}

	return balances, nil
}

func (s *PgStore) Save(balances map[string]float64) error {
	tx, err := s.DB.BeginTxx(context.Background(), &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}

	if _, err = tx.Exec(deleteBalances); err != nil {
		_ = tx.Rollback()
		return errors.Wrap(err, "clear accounts table")
	}

	stmt, err := tx.Prepare(insertBalance)
	if err != nil {
		_ = tx.Rollback()
		return errors.Wrap(err, "prepare snapshot insert")
	}

	for id, b := range balances {
		if _, err = stmt.Exec(id, b); err != nil {
			_ = tx.Rollback()
			log.Warnf("snapshot write for account %s was rolled back", id)
			return errors.Wrap(err, "insert account row")
		}
	}

	if err = tx.Commit(); err != nil {
		log.Error("failed to commit snapshot write, error: ", err)
		return errors.Wrap(err, "snapshot commit")
	}

	return nil
}
