package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/goal-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/goal-tracker-api/internal/domain"
)

const pipelineDealsTable = "pipeline_deals"

var dealColumns = []string{
	"d.id", "d.client_name", "d.stage", "d.probability", "d.monthly_fee",
	"d.spec_signed_date", "d.conversion_date", "d.notes", "d.created_by",
	"COALESCE(TRIM(u.name || ' ' || u.lastname), '')",
	"d.created_at", "d.updated_at",
}

type PipelineDealRepository interface {
	Create(ctx context.Context, deal *domain.PipelineDeal) error
	Update(ctx context.Context, deal *domain.PipelineDeal) error
	GetByID(ctx context.Context, id string) (*domain.PipelineDeal, error)
	List(ctx context.Context, stage domain.DealStage) ([]*domain.PipelineDeal, error)
	ListSignedInYear(ctx context.Context, year int) ([]*domain.PipelineDeal, error)
	Delete(ctx context.Context, id string) error
}

type pipelineDealRepository struct {
	conn postgres.Queryer
}

func NewPipelineDealRepository(conn postgres.Queryer) PipelineDealRepository {
	return &pipelineDealRepository{
		conn: conn,
	}
}

func (r *pipelineDealRepository) Create(ctx context.Context, deal *domain.PipelineDeal) error {
	dealSQL, dealArgs, err := psql.
		Insert(pipelineDealsTable).
		Columns("id", "client_name", "stage", "probability", "monthly_fee", "spec_signed_date", "conversion_date", "notes", "created_by").
		Values(deal.ID, deal.ClientName, deal.Stage, deal.Probability, deal.MonthlyFee, deal.SpecSignedDate, deal.ConversionDate, deal.Notes, deal.CreatedBy).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}

	err = r.conn.QueryRowContext(ctx, dealSQL, dealArgs...).Scan(&deal.CreatedAt, &deal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao inserir deal: %w", err)
	}

	return nil
}

func (r *pipelineDealRepository) Update(ctx context.Context, deal *domain.PipelineDeal) error {
	dealSQL, dealArgs, err := psql.
		Update(pipelineDealsTable).
		Set("client_name", deal.ClientName).
		Set("stage", deal.Stage).
		Set("probability", deal.Probability).
		Set("monthly_fee", deal.MonthlyFee).
		Set("spec_signed_date", deal.SpecSignedDate).
		Set("conversion_date", deal.ConversionDate).
		Set("notes", deal.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": deal.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return err
	}

	err = r.conn.QueryRowContext(ctx, dealSQL, dealArgs...).Scan(&deal.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("erro ao atualizar deal %s: %w", deal.ID, err)
	}

	return nil
}

func (r *pipelineDealRepository) GetByID(ctx context.Context, id string) (*domain.PipelineDeal, error) {
	dealSQL, dealArgs, err := r.selectDeals().Where(squirrel.Eq{"d.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	deal, err := scanDeal(r.conn.QueryRowContext(ctx, dealSQL, dealArgs...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return deal, nil
}

// List retorna os deals do estágio informado; estágio vazio retorna todos
func (r *pipelineDealRepository) List(ctx context.Context, stage domain.DealStage) ([]*domain.PipelineDeal, error) {
	query := r.selectDeals().OrderBy("d.created_at DESC")
	if stage != "" {
		query = query.Where(squirrel.Eq{"d.stage": stage})
	}

	return r.query(ctx, query)
}

// ListSignedInYear retorna os deals com spec assinada dentro do ano, exceto os perdidos
func (r *pipelineDealRepository) ListSignedInYear(ctx context.Context, year int) ([]*domain.PipelineDeal, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	query := r.selectDeals().
		Where(squirrel.GtOrEq{"d.spec_signed_date": start}).
		Where(squirrel.Lt{"d.spec_signed_date": end}).
		Where(squirrel.NotEq{"d.stage": domain.DealStageLost}).
		OrderBy("d.spec_signed_date ASC")

	return r.query(ctx, query)
}

func (r *pipelineDealRepository) Delete(ctx context.Context, id string) error {
	dealSQL, dealArgs, err := psql.
		Delete(pipelineDealsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.ExecContext(ctx, dealSQL, dealArgs...)
	if err != nil {
		return fmt.Errorf("erro ao remover deal %s: %w", id, err)
	}

	return checkAffected(result)
}

func (r *pipelineDealRepository) query(ctx context.Context, query squirrel.SelectBuilder) ([]*domain.PipelineDeal, error) {
	dealSQL, dealArgs, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, dealSQL, dealArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar deals: %w", err)
	}
	defer rows.Close()

	deals := make([]*domain.PipelineDeal, 0)
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, deal)
	}

	return deals, rows.Err()
}

func (r *pipelineDealRepository) selectDeals() squirrel.SelectBuilder {
	return psql.
		Select(dealColumns...).
		From(pipelineDealsTable + " d").
		LeftJoin(usersTable + " u ON u.id = d.created_by")
}

func scanDeal(row rowScanner) (*domain.PipelineDeal, error) {
	var (
		deal  domain.PipelineDeal
		notes sql.NullString
	)

	err := row.Scan(
		&deal.ID,
		&deal.ClientName,
		&deal.Stage,
		&deal.Probability,
		&deal.MonthlyFee,
		&deal.SpecSignedDate,
		&deal.ConversionDate,
		&notes,
		&deal.CreatedBy,
		&deal.CreatedByName,
		&deal.CreatedAt,
		&deal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	deal.Notes = notes.String
	return &deal, nil
}
