package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/goal-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/goal-tracker-api/internal/domain"
)

const scenariosTable = "forecasting_scenarios"

var scenarioColumns = []string{
	"s.id", "s.name", "s.description", "s.type", "s.year", "s.is_active",
	"s.inputs", "s.outputs", "s.created_by",
	"COALESCE(TRIM(u.name || ' ' || u.lastname), '')",
	"s.created_at", "s.updated_at",
}

type ScenarioRepository interface {
	Create(ctx context.Context, scenario *domain.ForecastingScenario) error
	Update(ctx context.Context, scenario *domain.ForecastingScenario) error
	UpdateOutputs(ctx context.Context, id string, outputs domain.ScenarioOutputs) error
	GetByID(ctx context.Context, id string) (*domain.ForecastingScenario, error)
	GetActive(ctx context.Context, year int) (*domain.ForecastingScenario, error)
	List(ctx context.Context, year int) ([]*domain.ForecastingScenario, error)
	Delete(ctx context.Context, id string) error
	Activate(ctx context.Context, id string, year int) error
}

type scenarioRepository struct {
	conn postgres.Conn
}

func NewScenarioRepository(conn postgres.Conn) ScenarioRepository {
	return &scenarioRepository{
		conn: conn,
	}
}

func (r *scenarioRepository) Create(ctx context.Context, scenario *domain.ForecastingScenario) error {
	inputs, outputs, err := marshalScenarioData(scenario)
	if err != nil {
		return err
	}

	scenarioSQL, scenarioArgs, err := psql.
		Insert(scenariosTable).
		Columns("id", "name", "description", "type", "year", "is_active", "inputs", "outputs", "created_by").
		Values(scenario.ID, scenario.Name, scenario.Description, scenario.Type, scenario.Year, scenario.IsActive, inputs, outputs, scenario.CreatedBy).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}

	err = r.conn.QueryRowContext(ctx, scenarioSQL, scenarioArgs...).Scan(&scenario.CreatedAt, &scenario.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao inserir cenário: %w", err)
	}

	return nil
}

func (r *scenarioRepository) Update(ctx context.Context, scenario *domain.ForecastingScenario) error {
	inputs, outputs, err := marshalScenarioData(scenario)
	if err != nil {
		return err
	}

	scenarioSQL, scenarioArgs, err := psql.
		Update(scenariosTable).
		Set("name", scenario.Name).
		Set("description", scenario.Description).
		Set("type", scenario.Type).
		Set("year", scenario.Year).
		Set("inputs", inputs).
		Set("outputs", outputs).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": scenario.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return err
	}

	err = r.conn.QueryRowContext(ctx, scenarioSQL, scenarioArgs...).Scan(&scenario.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("erro ao atualizar cenário %s: %w", scenario.ID, err)
	}

	return nil
}

func (r *scenarioRepository) UpdateOutputs(ctx context.Context, id string, outputs domain.ScenarioOutputs) error {
	data, err := json.Marshal(outputs)
	if err != nil {
		return err
	}

	scenarioSQL, scenarioArgs, err := psql.
		Update(scenariosTable).
		Set("outputs", data).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.ExecContext(ctx, scenarioSQL, scenarioArgs...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar outputs do cenário %s: %w", id, err)
	}

	return checkAffected(result)
}

func (r *scenarioRepository) GetByID(ctx context.Context, id string) (*domain.ForecastingScenario, error) {
	return r.getOne(ctx, squirrel.Eq{"s.id": id})
}

func (r *scenarioRepository) GetActive(ctx context.Context, year int) (*domain.ForecastingScenario, error) {
	return r.getOne(ctx, squirrel.Eq{"s.year": year, "s.is_active": true})
}

func (r *scenarioRepository) getOne(ctx context.Context, where squirrel.Eq) (*domain.ForecastingScenario, error) {
	scenarioSQL, scenarioArgs, err := r.selectScenarios().Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}

	scenario, err := scanScenario(r.conn.QueryRowContext(ctx, scenarioSQL, scenarioArgs...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return scenario, nil
}

// List retorna os cenários do ano; year zero retorna todos
func (r *scenarioRepository) List(ctx context.Context, year int) ([]*domain.ForecastingScenario, error) {
	query := r.selectScenarios().OrderBy("s.year DESC", "s.is_active DESC", "s.created_at DESC")
	if year > 0 {
		query = query.Where(squirrel.Eq{"s.year": year})
	}

	scenarioSQL, scenarioArgs, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, scenarioSQL, scenarioArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar cenários: %w", err)
	}
	defer rows.Close()

	scenarios := make([]*domain.ForecastingScenario, 0)
	for rows.Next() {
		scenario, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}

	return scenarios, rows.Err()
}

func (r *scenarioRepository) Delete(ctx context.Context, id string) error {
	scenarioSQL, scenarioArgs, err := psql.
		Delete(scenariosTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.ExecContext(ctx, scenarioSQL, scenarioArgs...)
	if err != nil {
		return fmt.Errorf("erro ao remover cenário %s: %w", id, err)
	}

	return checkAffected(result)
}

// Activate desativa os demais cenários do ano e ativa o informado na mesma transação
func (r *scenarioRepository) Activate(ctx context.Context, id string, year int) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		deactivateSQL, deactivateArgs, err := psql.
			Update(scenariosTable).
			Set("is_active", false).
			Where(squirrel.Eq{"year": year, "is_active": true}).
			Where(squirrel.NotEq{"id": id}).
			ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, deactivateSQL, deactivateArgs...); err != nil {
			return fmt.Errorf("erro ao desativar cenários de %d: %w", year, err)
		}

		activateSQL, activateArgs, err := psql.
			Update(scenariosTable).
			Set("is_active", true).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id, "year": year}).
			ToSql()
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, activateSQL, activateArgs...)
		if err != nil {
			return fmt.Errorf("erro ao ativar cenário %s: %w", id, err)
		}

		return checkAffected(result)
	})
}

func (r *scenarioRepository) selectScenarios() squirrel.SelectBuilder {
	return psql.
		Select(scenarioColumns...).
		From(scenariosTable + " s").
		LeftJoin(usersTable + " u ON u.id = s.created_by")
}

func marshalScenarioData(scenario *domain.ForecastingScenario) (inputs, outputs []byte, err error) {
	inputs, err = json.Marshal(scenario.Inputs)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao serializar inputs: %w", err)
	}

	outputs, err = json.Marshal(scenario.Outputs)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao serializar outputs: %w", err)
	}

	return inputs, outputs, nil
}

func scanScenario(row rowScanner) (*domain.ForecastingScenario, error) {
	var (
		scenario domain.ForecastingScenario
		inputs   []byte
		outputs  []byte
	)

	err := row.Scan(
		&scenario.ID,
		&scenario.Name,
		&scenario.Description,
		&scenario.Type,
		&scenario.Year,
		&scenario.IsActive,
		&inputs,
		&outputs,
		&scenario.CreatedBy,
		&scenario.CreatedByName,
		&scenario.CreatedAt,
		&scenario.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(inputs, &scenario.Inputs); err != nil {
		return nil, fmt.Errorf("inputs inválidos no cenário %s: %w", scenario.ID, err)
	}

	if err := json.Unmarshal(outputs, &scenario.Outputs); err != nil {
		return nil, fmt.Errorf("outputs inválidos no cenário %s: %w", scenario.ID, err)
	}

	return &scenario, nil
}
