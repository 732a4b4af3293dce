package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/vfg2006/goal-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/goal-tracker-api/internal/config"
	"github.com/vfg2006/goal-tracker-api/internal/domain"
	"github.com/vfg2006/goal-tracker-api/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

type migration struct {
	name string
	stmt string
}

var migrations = []migration{
	{
		name: "users",
		stmt: `CREATE TABLE IF NOT EXISTS users (
			id            SERIAL PRIMARY KEY,
			name          VARCHAR(100) NOT NULL,
			lastname      VARCHAR(100) NOT NULL DEFAULT '',
			email         VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			active        BOOLEAN NOT NULL DEFAULT FALSE,
			role_id       INTEGER NOT NULL DEFAULT 3,
			deleted       BOOLEAN NOT NULL DEFAULT FALSE,
			deleted_at    TIMESTAMPTZ,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "forecasting_scenarios",
		stmt: `CREATE TABLE IF NOT EXISTS forecasting_scenarios (
			id          VARCHAR(32) PRIMARY KEY,
			name        VARCHAR(150) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			type        VARCHAR(20) NOT NULL,
			year        INTEGER NOT NULL,
			is_active   BOOLEAN NOT NULL DEFAULT FALSE,
			inputs      JSONB NOT NULL,
			outputs     JSONB NOT NULL,
			created_by  INTEGER REFERENCES users(id),
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "forecasting_scenarios_active_idx",
		stmt: `CREATE UNIQUE INDEX IF NOT EXISTS forecasting_scenarios_active_year
			ON forecasting_scenarios (year) WHERE is_active`,
	},
	{
		name: "pipeline_deals",
		stmt: `CREATE TABLE IF NOT EXISTS pipeline_deals (
			id               VARCHAR(32) PRIMARY KEY,
			client_name      VARCHAR(200) NOT NULL,
			stage            VARCHAR(20) NOT NULL,
			probability      INTEGER NOT NULL CHECK (probability BETWEEN 0 AND 100),
			monthly_fee      NUMERIC(14, 2) NOT NULL DEFAULT 0,
			spec_signed_date DATE,
			conversion_date  DATE,
			notes            TEXT,
			created_by       INTEGER REFERENCES users(id),
			created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "pipeline_deals_stage_idx",
		stmt: `CREATE INDEX IF NOT EXISTS pipeline_deals_stage ON pipeline_deals (stage)`,
	},
	{
		name: "revenue_actuals",
		stmt: `CREATE TABLE IF NOT EXISTS revenue_actuals (
			id          VARCHAR(32) PRIMARY KEY,
			year        INTEGER NOT NULL,
			month       INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
			amount      NUMERIC(14, 2) NOT NULL,
			notes       TEXT,
			recorded_by INTEGER REFERENCES users(id),
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (year, month)
		)`,
	},
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao carregar configuração")
	}
	log.Setup(cfg.App.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao banco de dados")
	}
	defer conn.Close()

	log.L.WithField("total", len(migrations)).Info("Iniciando script de migração")

	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, m := range migrations {
			start := time.Now()
			if _, err := tx.ExecContext(ctx, m.stmt); err != nil {
				log.L.WithError(err).WithField("migration", m.name).Error("Erro ao aplicar migração")
				return err
			}
			log.L.WithFields(log.Fields{
				"migration": m.name,
				"duration":  time.Since(start).String(),
			}).Info("Migração aplicada")
		}

		return seedAdmin(ctx, tx)
	})
	if err != nil {
		log.L.WithError(err).Fatal("Migração abortada")
	}

	log.L.Info("Migração concluída")
}

// seedAdmin cria o primeiro administrador a partir de ADMIN_EMAIL e ADMIN_PASSWORD, se ainda não existir
func seedAdmin(ctx context.Context, tx *sql.Tx) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.L.Info("ADMIN_EMAIL/ADMIN_PASSWORD não definidos, seed de administrador ignorado")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO users (name, lastname, email, password_hash, active, role_id)
		VALUES ($1, $2, $3, $4, TRUE, $5)
		ON CONFLICT (email) DO NOTHING`,
		"Admin", "", email, string(hash), domain.RoleAdmin,
	)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		log.L.WithField("user_email", email).Info("Administrador já existe")
		return nil
	}

	log.L.WithField("user_email", email).Info("Administrador criado")
	return nil
}
