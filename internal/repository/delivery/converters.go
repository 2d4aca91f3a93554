package delivery

import (
	"encoding/json"

	"deliveryhub/internal/entities"
	"deliveryhub/internal/repository/normalize"
)

func ToDomain(d *DeliveryDB) *entities.Delivery {
	if d == nil {
		return nil
	}

	delivery := normalize.ToDelivery(normalize.Record{
		ID:             d.ID,
		Owner:          json.RawMessage(d.OwnerRef),
		RecipientName:  d.RecipientName,
		RecipientPhone: d.RecipientPhone,
		Pickup: entities.Location{
			Address:   d.PickupAddress,
			Latitude:  d.PickupLatitude,
			Longitude: d.PickupLongitude,
		},
		Dropoff: entities.Location{
			Address:   d.DropoffAddress,
			Latitude:  d.DropoffLatitude,
			Longitude: d.DropoffLongitude,
		},
		PackageName:   d.PackageName,
		PackageNote:   d.PackageNote,
		PackageSize:   d.PackageSize,
		Status:        d.Status,
		TransporterID: d.TransporterID,
		AcceptedAt:    d.AcceptedAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	})
	return &delivery
}

func FromDomain(d *entities.Delivery) *DeliveryDB {
	if d == nil {
		return nil
	}

	rec := normalize.FromDelivery(*d)
	return &DeliveryDB{
		ID:               rec.ID,
		OwnerRef:         rec.Owner,
		RecipientName:    rec.RecipientName,
		RecipientPhone:   rec.RecipientPhone,
		PickupAddress:    rec.Pickup.Address,
		PickupLatitude:   rec.Pickup.Latitude,
		PickupLongitude:  rec.Pickup.Longitude,
		DropoffAddress:   rec.Dropoff.Address,
		DropoffLatitude:  rec.Dropoff.Latitude,
		DropoffLongitude: rec.Dropoff.Longitude,
		PackageName:      rec.PackageName,
		PackageNote:      rec.PackageNote,
		PackageSize:      rec.PackageSize,
		Status:           rec.Status,
		TransporterID:    rec.TransporterID,
		AcceptedAt:       rec.AcceptedAt,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}
}
