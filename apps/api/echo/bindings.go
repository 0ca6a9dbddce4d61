package echoapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/tmahmud/shikkha/core"
	"github.com/tmahmud/shikkha/core/user"
)

type (
	LoginRequest struct {
		StudentID string `json:"studentId" validate:"required"`
		Password  string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string          `json:"token"`
		User  user.PublicUser `json:"user"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.StudentID = core.CleanString(lr.StudentID)
	return validate.Struct(lr)
}
