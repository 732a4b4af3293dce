package handler

import (
	"net/http"

	"github.com/vfg2006/goal-tracker-api/internal/domain"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/goal-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/goal-tracker-api/pkg/middleware"
	"github.com/vfg2006/goal-tracker-api/pkg/utils"
)

// GetUser retorna informações do usuário por ID
func GetUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := userIDParam(w, r)
		if !ok {
			return
		}

		user, err := service.GetUserProfile(r.Context(), id)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao buscar usuário")
			return
		}

		writeResponse(w, r, http.StatusOK, user)
	}
}

// ListUsers lista todos os usuários; a rota é restrita a administradores
func ListUsers(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := service.ListUser(r.Context())
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao buscar usuários")
			return
		}

		writeResponse(w, r, http.StatusOK, users)
	}
}

// UpdateUser atualiza o próprio perfil; administradores editam qualquer usuário
func UpdateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := userIDParam(w, r)
		if !ok {
			return
		}

		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok || (userClaims.UserID != id && userClaims.UserRoleID != domain.RoleAdmin) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para editar este usuário", nil)
			return
		}

		var updateReq domain.UpdateUserRequest
		if err := utils.DecodeJSON(r, &updateReq); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}
		updateReq.ID = id

		if userClaims.UserRoleID != domain.RoleAdmin && (updateReq.RoleID != nil || updateReq.Active != nil || updateReq.Deleted != nil) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem alterar perfil ou status de usuários", nil)
			return
		}

		if err := service.UpdateUser(r.Context(), &updateReq); err != nil {
			writeUsecaseError(w, r, err, "Erro ao atualizar usuário")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
