package user

import "parkhub/internal/domain"

type UpdateRoleRequest struct {
	Role domain.UserRole `json:"role" validate:"required,oneof=user attendant admin"`
}
