package pipeline

import (
	"errors"
	"fmt"
)

var (
	ErrDealNotFound      = errors.New("deal não encontrado")
	ErrInvalidDeal       = errors.New("dados do deal inválidos")
	ErrInvalidStage      = errors.New("estágio do deal inválido")
	ErrDealClosed        = errors.New("deal convertido ou perdido não muda de estágio")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
	ErrIDGeneration      = errors.New("erro ao gerar identificador")
)

// PipelineError carrega o código de API e o deal envolvido
type PipelineError struct {
	Err     error
	Code    string
	DealID  string
	Details string
}

func (e *PipelineError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func newPipelineError(err error, code, dealID, details string) *PipelineError {
	return &PipelineError{
		Err:     err,
		Code:    code,
		DealID:  dealID,
		Details: details,
	}
}
