package scenario

import (
	"errors"
	"fmt"
)

var (
	ErrScenarioNotFound   = errors.New("cenário não encontrado")
	ErrInvalidInputs      = errors.New("inputs do cenário inválidos")
	ErrInvalidScenario    = errors.New("dados do cenário inválidos")
	ErrActiveYearChange   = errors.New("não é possível mudar o ano de um cenário ativo")
	ErrDatabaseOperation  = errors.New("erro ao realizar operação no banco de dados")
	ErrIDGeneration       = errors.New("erro ao gerar identificador")
	ErrMissingInputs      = errors.New("inputs são obrigatórios")
	ErrInvalidPipelineSet = errors.New("parâmetros de seed do pipeline inválidos")
)

// ScenarioError carrega o código de API e o cenário envolvido
type ScenarioError struct {
	Err        error
	Code       string
	ScenarioID string
	Details    string
}

func (e *ScenarioError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ScenarioError) Unwrap() error {
	return e.Err
}

func newScenarioError(err error, code, scenarioID, details string) *ScenarioError {
	return &ScenarioError{
		Err:        err,
		Code:       code,
		ScenarioID: scenarioID,
		Details:    details,
	}
}
