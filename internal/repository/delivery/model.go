package delivery

import "time"

type DeliveryDB struct {
	ID               string
	OwnerRef         []byte
	RecipientName    string
	RecipientPhone   string
	PickupAddress    string
	PickupLatitude   float64
	PickupLongitude  float64
	DropoffAddress   string
	DropoffLatitude  float64
	DropoffLongitude float64
	PackageName      string
	PackageNote      *string
	PackageSize      string
	Status           string
	TransporterID    *string
	AcceptedAt       *time.Time
	CreatedAt        *time.Time
	UpdatedAt        *time.Time
}

type StatusCountDB struct {
	Status string
	Count  int64
}
