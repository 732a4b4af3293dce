package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Autenticação
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrUserDisabled          = "AUTH_002" // Usuário desativado
	ErrUserNotFound          = "AUTH_003" // Usuário não encontrado
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes
	ErrUserAlreadyExists     = "AUTH_009" // Usuário já existe

	// Validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Cenários de forecast
	ErrScenarioNotFound      = "SCN_001" // Cenário não encontrado
	ErrInvalidScenarioInputs = "SCN_002" // Inputs do cenário inválidos
	ErrScenarioConflict      = "SCN_003" // Conflito ao ativar cenário

	// Pipeline
	ErrDealNotFound     = "PIP_001" // Deal não encontrado
	ErrInvalidDeal      = "PIP_002" // Dados do deal inválidos
	ErrDealClosed       = "PIP_003" // Deal convertido ou perdido não muda de estágio
	ErrInvalidDealStage = "PIP_004" // Estágio inválido

	// Relatórios
	ErrNoActiveScenario = "RPT_001" // Nenhum cenário ativo para o ano
	ErrInvalidActual    = "RPT_002" // Realizado inválido

	// Servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrJobNotFound       = "SRV_005" // Job agendado desconhecido
	ErrRouteNotFound     = "SRV_006" // Rota inexistente
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserDisabled:          http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrUserAlreadyExists:     http.StatusBadRequest,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrScenarioNotFound:      http.StatusNotFound,
	ErrInvalidScenarioInputs: http.StatusUnprocessableEntity,
	ErrScenarioConflict:      http.StatusConflict,
	ErrDealNotFound:          http.StatusNotFound,
	ErrInvalidDeal:           http.StatusUnprocessableEntity,
	ErrDealClosed:            http.StatusConflict,
	ErrInvalidDealStage:      http.StatusBadRequest,
	ErrNoActiveScenario:      http.StatusNotFound,
	ErrInvalidActual:         http.StatusUnprocessableEntity,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrRouteNotFound:         http.StatusNotFound,
	ErrJobNotFound:           http.StatusNotFound,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusFor retorna o status HTTP de um código de erro
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado na resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError envolve um erro Go em um erro de API
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
