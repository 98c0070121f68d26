package validators

import (
	"guestserver/cmd/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

func IsGuestStatus(fl validator.FieldLevel) bool {
	return entity.IsValidStatus(fl.Field().String())
}
