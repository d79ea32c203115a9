package dto

import (
	"time"

	"github.com/edupath-ng/edupath-go-api/internal/models"
)

// AdminCreateRequest carries the fields for a new back-office account.
// No password field: the credential is generated and emailed.
type AdminCreateRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"omitempty,oneof=admin superadmin"`
}

// AdminUpdateRequest holds optional account edits.
type AdminUpdateRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Username *string `json:"username" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin superadmin"`
}

// AdminLoginRequest authenticates by username and password.
type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminResponse serializes an admin without the credential hash.
type AdminResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AdminLoginResponse returns the authenticated admin and session token.
type AdminLoginResponse struct {
	Admin       AdminResponse `json:"admin"`
	AccessToken string        `json:"accessToken"`
}

// NewAdminResponse maps a model to its API representation.
func NewAdminResponse(admin models.Admin) AdminResponse {
	return AdminResponse{
		ID:        admin.ID,
		Name:      admin.Name,
		Username:  admin.Username,
		Email:     admin.Email,
		Role:      admin.Role,
		CreatedAt: admin.CreatedAt,
		UpdatedAt: admin.UpdatedAt,
	}
}

// NewAdminResponseSlice maps a list of models.
func NewAdminResponseSlice(admins []models.Admin) []AdminResponse {
	responses := make([]AdminResponse, 0, len(admins))
	for _, admin := range admins {
		responses = append(responses, NewAdminResponse(admin))
	}
	return responses
}
