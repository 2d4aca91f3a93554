package delivery

import (
	"fmt"
	"strings"

	"deliveryhub/internal/entities"
)

type TransitionPolicy string

const (
	// PolicyPermissive: владелец выставляет любой статус из любого, отмена доступна всегда.
	PolicyPermissive TransitionPolicy = "permissive"
	// PolicyStrict: только движение вперед по жизненному циклу, delivered и cancelled конечные.
	PolicyStrict TransitionPolicy = "strict"
)

func ParseTransitionPolicy(s string) (TransitionPolicy, error) {
	switch TransitionPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyPermissive:
		return PolicyPermissive, nil
	case PolicyStrict:
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

func (p TransitionPolicy) String() string {
	return string(p)
}

var progression = map[entities.DeliveryStatus]int{
	entities.DeliveryPending:   0,
	entities.DeliveryPickedUp:  1,
	entities.DeliveryInTransit: 2,
	entities.DeliveryDelivered: 3,
}

// Allows проверяет переход статуса, инициированный владельцем или перевозчиком.
func (p TransitionPolicy) Allows(from, to entities.DeliveryStatus) bool {
	if p != PolicyStrict {
		return true
	}

	if to == entities.DeliveryCancelled {
		return p.AllowsCancel(from)
	}

	fromRank, ok := progression[from]
	if !ok || from == entities.DeliveryDelivered {
		return false
	}
	toRank, ok := progression[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// DependsOnCurrentStatus сообщает, зависит ли решение политики от текущего статуса доставки.
func (p TransitionPolicy) DependsOnCurrentStatus() bool {
	return p == PolicyStrict
}

func (p TransitionPolicy) AllowsCancel(from entities.DeliveryStatus) bool {
	if p != PolicyStrict {
		return true
	}

	switch from {
	case entities.DeliveryPending, entities.DeliveryPickedUp, entities.DeliveryInTransit:
		return true
	default:
		return false
	}
}
