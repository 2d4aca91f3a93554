package entities

import "time"

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryPickedUp  DeliveryStatus = "picked_up"
	DeliveryInTransit DeliveryStatus = "in_transit"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryCancelled DeliveryStatus = "cancelled"
)

// DeliveryStatuses перечисляет все статусы в порядке жизненного цикла.
var DeliveryStatuses = []DeliveryStatus{
	DeliveryPending,
	DeliveryPickedUp,
	DeliveryInTransit,
	DeliveryDelivered,
	DeliveryCancelled,
}

// TransporterStatuses - статусы, которые может выставить назначенный перевозчик.
var TransporterStatuses = []DeliveryStatus{
	DeliveryPickedUp,
	DeliveryInTransit,
	DeliveryDelivered,
}

func (s DeliveryStatus) String() string {
	return string(s)
}

func (s DeliveryStatus) IsValid() bool {
	return containsStatus(DeliveryStatuses, s)
}

func (s DeliveryStatus) IsTransporterStatus() bool {
	return containsStatus(TransporterStatuses, s)
}

func containsStatus(statuses []DeliveryStatus, s DeliveryStatus) bool {
	for _, status := range statuses {
		if status == s {
			return true
		}
	}
	return false
}

type Location struct {
	Address   string
	Latitude  float64
	Longitude float64
}

type Delivery struct {
	ID             string
	OwnerUserID    string
	RecipientName  string
	RecipientPhone string
	Pickup         Location
	Dropoff        Location
	PackageName    string
	PackageNote    string
	PackageSize    string
	Status         DeliveryStatus
	TransporterID  *string
	AcceptedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsAvailable - доставка ждет перевозчика: в статусе pending и еще никем не принята.
func (d *Delivery) IsAvailable() bool {
	return d.Status == DeliveryPending && d.TransporterID == nil
}

func (d *Delivery) IsOwner(userID string) bool {
	return d.OwnerUserID == userID
}

func (d *Delivery) IsTransporter(userID string) bool {
	return d.TransporterID != nil && *d.TransporterID == userID
}

// DeliveryCreate - входные данные на создание доставки.
// Pickup и Dropoff указатели, чтобы отличать отсутствующую точку от пустой.
type DeliveryCreate struct {
	RecipientName  string
	RecipientPhone string
	Pickup         *Location
	Dropoff        *Location
	PackageName    string
	PackageNote    *string
	PackageSize    string
}

// StatusUpdate описывает запись статуса. Если Expected задан, запись применяется,
// только если текущий статус в хранилище все еще равен Expected.
type StatusUpdate struct {
	ID        string
	Expected  DeliveryStatus
	Status    DeliveryStatus
	UpdatedAt time.Time
}

// Claim описывает захват доставки перевозчиком.
type Claim struct {
	ID            string
	TransporterID string
	AcceptedAt    time.Time
}
