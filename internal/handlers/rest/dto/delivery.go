package dto

import "time"

type Location struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Delivery struct {
	ID             string     `json:"delivery_id"`
	UserID         string     `json:"userId"`
	RecipientName  string     `json:"recipientName"`
	RecipientPhone string     `json:"recipientPhone"`
	Pickup         Location   `json:"pickup"`
	Dropoff        Location   `json:"dropoff"`
	PackageName    string     `json:"packageName"`
	PackageNote    string     `json:"packageNote"`
	PackageSize    string     `json:"packageSize"`
	Status         string     `json:"status"`
	TransporterID  *string    `json:"transporterId,omitempty"`
	AcceptedAt     *time.Time `json:"acceptedAt,omitempty"`
	CreatedAt      *time.Time `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// DeliveryCreate - тело POST /deliveries/create. Точки маршрута указатели,
// чтобы отсутствующая точка не превращалась в пустую.
type DeliveryCreate struct {
	RecipientName  string    `json:"recipientName"`
	RecipientPhone string    `json:"recipientPhone"`
	Pickup         *Location `json:"pickup"`
	Dropoff        *Location `json:"dropoff"`
	PackageName    string    `json:"packageName"`
	PackageNote    *string   `json:"packageNote"`
	PackageSize    string    `json:"packageSize"`
}

type DeliveryCreateResponse struct {
	Message    string   `json:"message"`
	DeliveryID string   `json:"deliveryId"`
	Delivery   Delivery `json:"delivery"`
}

type DeliveryResponse struct {
	Delivery Delivery `json:"delivery"`
}

type DeliveriesResponse struct {
	Deliveries []Delivery `json:"deliveries"`
}

type StatusUpdate struct {
	Status string `json:"status"`
}

type StatusUpdateResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type AcceptResponse struct {
	Message    string `json:"message"`
	DeliveryID string `json:"deliveryId"`
}
