package delivery

import (
	"strings"

	"deliveryhub/internal/entities"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type locationInput struct {
	Address   string `validate:"required"`
	Latitude  float64
	Longitude float64
}

type createInput struct {
	RecipientName  string         `validate:"required"`
	RecipientPhone string         `validate:"required"`
	Pickup         *locationInput `validate:"required"`
	Dropoff        *locationInput `validate:"required"`
	PackageName    string         `validate:"required"`
}

func toLocationInput(l *entities.Location) *locationInput {
	if l == nil {
		return nil
	}
	return &locationInput{
		Address:   strings.TrimSpace(l.Address),
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
	}
}

// normalizeCreate обрезает пробелы и проверяет обязательные поля.
func normalizeCreate(in entities.DeliveryCreate) (entities.DeliveryCreate, error) {
	input := createInput{
		RecipientName:  strings.TrimSpace(in.RecipientName),
		RecipientPhone: strings.TrimSpace(in.RecipientPhone),
		Pickup:         toLocationInput(in.Pickup),
		Dropoff:        toLocationInput(in.Dropoff),
		PackageName:    strings.TrimSpace(in.PackageName),
	}
	if err := validate.Struct(input); err != nil {
		return entities.DeliveryCreate{}, ErrMissingRequiredFields
	}

	out := entities.DeliveryCreate{
		RecipientName:  input.RecipientName,
		RecipientPhone: input.RecipientPhone,
		Pickup: &entities.Location{
			Address:   input.Pickup.Address,
			Latitude:  input.Pickup.Latitude,
			Longitude: input.Pickup.Longitude,
		},
		Dropoff: &entities.Location{
			Address:   input.Dropoff.Address,
			Latitude:  input.Dropoff.Latitude,
			Longitude: input.Dropoff.Longitude,
		},
		PackageName: input.PackageName,
		PackageSize: strings.TrimSpace(in.PackageSize),
	}
	if in.PackageNote != nil {
		note := strings.TrimSpace(*in.PackageNote)
		out.PackageNote = &note
	}
	return out, nil
}

func isValidID(id string) bool {
	return strings.TrimSpace(id) != ""
}
