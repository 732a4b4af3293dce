package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/goal-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/goal-tracker-api/internal/domain"
)

const revenueActualsTable = "revenue_actuals"

type RevenueActualRepository interface {
	Upsert(ctx context.Context, actual *domain.RevenueActual) error
	ListByYear(ctx context.Context, year int) ([]*domain.RevenueActual, error)
}

type revenueActualRepository struct {
	conn postgres.Queryer
}

func NewRevenueActualRepository(conn postgres.Queryer) RevenueActualRepository {
	return &revenueActualRepository{
		conn: conn,
	}
}

// Upsert grava o realizado do mês; um segundo registro para o mesmo ano/mês sobrescreve o anterior
func (r *revenueActualRepository) Upsert(ctx context.Context, actual *domain.RevenueActual) error {
	actualSQL, actualArgs, err := psql.
		Insert(revenueActualsTable).
		Columns("id", "year", "month", "amount", "notes", "recorded_by").
		Values(actual.ID, actual.Year, actual.Month, actual.Amount, actual.Notes, actual.RecordedBy).
		Suffix(`ON CONFLICT (year, month) DO UPDATE SET
			amount = EXCLUDED.amount,
			notes = EXCLUDED.notes,
			recorded_by = EXCLUDED.recorded_by,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return err
	}

	err = r.conn.QueryRowContext(ctx, actualSQL, actualArgs...).Scan(&actual.ID, &actual.CreatedAt, &actual.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao gravar realizado %d/%d: %w", actual.Month, actual.Year, err)
	}

	return nil
}

func (r *revenueActualRepository) ListByYear(ctx context.Context, year int) ([]*domain.RevenueActual, error) {
	actualSQL, actualArgs, err := psql.
		Select("id", "year", "month", "amount", "notes", "recorded_by", "created_at", "updated_at").
		From(revenueActualsTable).
		Where(squirrel.Eq{"year": year}).
		OrderBy("month ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, actualSQL, actualArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar realizados de %d: %w", year, err)
	}
	defer rows.Close()

	actuals := make([]*domain.RevenueActual, 0, domain.MonthsInYear)
	for rows.Next() {
		var (
			actual domain.RevenueActual
			notes  sql.NullString
		)

		if err := rows.Scan(
			&actual.ID,
			&actual.Year,
			&actual.Month,
			&actual.Amount,
			&notes,
			&actual.RecordedBy,
			&actual.CreatedAt,
			&actual.UpdatedAt,
		); err != nil {
			return nil, err
		}

		actual.Notes = notes.String
		actuals = append(actuals, &actual)
	}

	return actuals, rows.Err()
}
