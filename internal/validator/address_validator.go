package validator

import (
	"context"
	"strings"

	"github.com/jr777pal/PetNest-India/internal/usecase"
)

type addressValidator struct{}

func NewAddressValidator() usecase.AddressValidator {
	return addressValidator{}
}

// address_line2以外は必須。形式（電話・PIN）はチェックしない
func (addressValidator) ValidateAddress(ctx context.Context, in usecase.AddressInput) error {
	required := []string{
		in.FullName,
		in.Phone,
		in.AddressLine1,
		in.City,
		in.State,
		in.Pincode,
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return badRequest(usecase.MsgFillRequired)
		}
	}
	return nil
}
