package db

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS deliveries (
    id                  BIGSERIAL PRIMARY KEY,
    campaign_id         UUID        NOT NULL,
    recipient_index     INT         NOT NULL,
    recipient           TEXT        NOT NULL,
    status              TEXT        NOT NULL CHECK (status IN ('sent', 'failed')),
    provider_message_id TEXT,
    last_error          TEXT,
    sent_at             TIMESTAMPTZ NOT NULL,
    created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_deliveries_campaign ON deliveries (campaign_id, recipient_index);
`

func ConnectAndMigrate(dbURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to database")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		log.Error().Err(err).Msg("failed to ping database")
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		log.Error().Err(err).Msg("failed to migrate database")
		db.Close()
		return nil, err
	}

	log.Info().Msg("database connected and migrated")
	return db, nil
}
