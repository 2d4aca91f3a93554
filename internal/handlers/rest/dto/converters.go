package dto

import "deliveryhub/internal/entities"

func FromDelivery(d *entities.Delivery) Delivery {
	res := Delivery{
		ID:             d.ID,
		UserID:         d.OwnerUserID,
		RecipientName:  d.RecipientName,
		RecipientPhone: d.RecipientPhone,
		Pickup:         fromLocation(d.Pickup),
		Dropoff:        fromLocation(d.Dropoff),
		PackageName:    d.PackageName,
		PackageNote:    d.PackageNote,
		PackageSize:    d.PackageSize,
		Status:         d.Status.String(),
		TransporterID:  d.TransporterID,
		AcceptedAt:     d.AcceptedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if !d.CreatedAt.IsZero() {
		createdAt := d.CreatedAt
		res.CreatedAt = &createdAt
	}
	return res
}

func FromDeliveries(deliveries []entities.Delivery) []Delivery {
	res := make([]Delivery, 0, len(deliveries))
	for i := range deliveries {
		res = append(res, FromDelivery(&deliveries[i]))
	}
	return res
}

func (c DeliveryCreate) ToEntity() entities.DeliveryCreate {
	return entities.DeliveryCreate{
		RecipientName:  c.RecipientName,
		RecipientPhone: c.RecipientPhone,
		Pickup:         toLocation(c.Pickup),
		Dropoff:        toLocation(c.Dropoff),
		PackageName:    c.PackageName,
		PackageNote:    c.PackageNote,
		PackageSize:    c.PackageSize,
	}
}

func fromLocation(l entities.Location) Location {
	return Location{
		Address:   l.Address,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
	}
}

func toLocation(l *Location) *entities.Location {
	if l == nil {
		return nil
	}
	return &entities.Location{
		Address:   l.Address,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
	}
}
