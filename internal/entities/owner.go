package entities

import "strings"

const (
	legacyPathPrefix = "/users/"
	legacyRefPrefix  = "users/"
)

type OwnerRefKind int

const (
	// OwnerBare - каноничная форма, голый идентификатор пользователя.
	OwnerBare OwnerRefKind = iota
	// OwnerLegacyPath - строка вида "/users/<id>".
	OwnerLegacyPath
	// OwnerLegacyRef - объект-ссылка с путем вида "users/<id>".
	OwnerLegacyRef
)

func (k OwnerRefKind) String() string {
	switch k {
	case OwnerLegacyPath:
		return "legacy_path"
	case OwnerLegacyRef:
		return "legacy_ref"
	default:
		return "bare"
	}
}

// OwnerRef - ссылка на владельца доставки в одной из исторических кодировок.
type OwnerRef struct {
	Kind  OwnerRefKind
	Value string
}

func BareOwner(userID string) OwnerRef {
	return OwnerRef{Kind: OwnerBare, Value: userID}
}

func LegacyPathOwner(userID string) OwnerRef {
	return OwnerRef{Kind: OwnerLegacyPath, Value: legacyPathPrefix + userID}
}

func LegacyRefOwner(userID string) OwnerRef {
	return OwnerRef{Kind: OwnerLegacyRef, Value: legacyRefPrefix + userID}
}

// OwnerEncodings возвращает все формы, в которых может храниться ссылка на userID,
// начиная с каноничной.
func OwnerEncodings(userID string) []OwnerRef {
	return []OwnerRef{
		BareOwner(userID),
		LegacyPathOwner(userID),
		LegacyRefOwner(userID),
	}
}

// UserID приводит ссылку к голому идентификатору пользователя.
func (r OwnerRef) UserID() string {
	switch r.Kind {
	case OwnerLegacyPath:
		return strings.TrimPrefix(r.Value, legacyPathPrefix)
	case OwnerLegacyRef:
		return strings.TrimPrefix(r.RefPath(), legacyRefPrefix)
	default:
		return r.Value
	}
}

// RefPath возвращает путь объекта-ссылки без ведущих "/": "/users/abc" и "users/abc" равнозначны.
func (r OwnerRef) RefPath() string {
	return strings.TrimLeft(r.Value, "/")
}

// Matches сравнивает ссылки одной кодировки по идентификатору пользователя.
func (r OwnerRef) Matches(other OwnerRef) bool {
	return r.Kind == other.Kind && r.UserID() == other.UserID()
}
