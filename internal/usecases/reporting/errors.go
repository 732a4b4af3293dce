package reporting

import (
	"errors"
	"fmt"
)

var (
	ErrNoActiveScenario  = errors.New("nenhum cenário ativo para o ano")
	ErrScenarioNotFound  = errors.New("cenário não encontrado")
	ErrInvalidActual     = errors.New("realizado inválido")
	ErrInvalidYear       = errors.New("ano inválido")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
	ErrIDGeneration      = errors.New("erro ao gerar identificador")
)

type ReportingError struct {
	Err     error
	Code    string
	Year    int
	Details string
}

func (e *ReportingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReportingError) Unwrap() error {
	return e.Err
}

func newReportingError(err error, code string, year int, details string) *ReportingError {
	return &ReportingError{
		Err:     err,
		Code:    code,
		Year:    year,
		Details: details,
	}
}
