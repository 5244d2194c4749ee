package timeline

import (
	"strings"
)

// Category is the closed set of activity categories the timeline knows how
// to render.
type Category int

const (
	CategoryGeneric Category = iota
	CategoryArrival
	CategoryFood
	CategoryPayment
	CategoryService
)

var categoryNames = map[string]Category{
	"ARRIVAL": CategoryArrival,
	"FOOD":    CategoryFood,
	"PAYMENT": CategoryPayment,
	"SERVICE": CategoryService,
}

// ArrivalKind is the normalized meaning of an ARRIVAL event type.
type ArrivalKind int

const (
	ArrivalUnknown ArrivalKind = iota
	ArrivalCheckIn
	ArrivalCheckOut
	ArrivalPreCheckin
	ArrivalRoomAssigned
	ArrivalRoomReassigned
	ArrivalNoShow
	ArrivalCancel
)

// arrivalSynonyms lists every spelling the backend has used for an arrival
// event type. Keys are in canonical form (see canonical).
var arrivalSynonyms = map[string]ArrivalKind{
	"CHECKIN":    ArrivalCheckIn,
	"CHECK_IN":   ArrivalCheckIn,
	"CHECKED_IN": ArrivalCheckIn,
	"INHOUSE":    ArrivalCheckIn,
	"IN_HOUSE":   ArrivalCheckIn,

	"CHECKOUT":    ArrivalCheckOut,
	"CHECK_OUT":   ArrivalCheckOut,
	"CHECKED_OUT": ArrivalCheckOut,

	"PRECHECKIN":            ArrivalPreCheckin,
	"PRE_CHECKIN":           ArrivalPreCheckin,
	"PRE_CHECK_IN":          ArrivalPreCheckin,
	"PRECHECKIN_SUBMITTED":  ArrivalPreCheckin,
	"PRE_CHECKIN_SUBMITTED": ArrivalPreCheckin,

	"ROOM_ASSIGNED": ArrivalRoomAssigned,
	"ROOM_ASSIGN":   ArrivalRoomAssigned,

	"ROOM_REASSIGNED": ArrivalRoomReassigned,
	"ROOM_CHANGED":    ArrivalRoomReassigned,
	"ROOM_MOVE":       ArrivalRoomReassigned,

	"NO_SHOW": ArrivalNoShow,
	"NOSHOW":  ArrivalNoShow,

	"CANCEL":            ArrivalCancel,
	"CANCELLED":         ArrivalCancel,
	"CANCELED":          ArrivalCancel,
	"BOOKING_CANCELLED": ArrivalCancel,
}

var arrivalLabels = map[ArrivalKind]string{
	ArrivalCheckIn:        TypeCheckIn,
	ArrivalCheckOut:       TypeCheckOut,
	ArrivalPreCheckin:     TypePreCheckin,
	ArrivalRoomAssigned:   TypeRoomAssigned,
	ArrivalRoomReassigned: TypeRoomReassigned,
	ArrivalNoShow:         TypeNoShow,
	ArrivalCancel:         TypeCancel,
}

// canonical upper-cases s and folds '-' and ' ' into '_'.
func canonical(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

func NormalizeCategory(raw string) Category {
	if c, ok := categoryNames[canonical(raw)]; ok {
		return c
	}
	return CategoryGeneric
}

func NormalizeArrival(raw string) ArrivalKind {
	return arrivalSynonyms[canonical(raw)]
}

func (c Category) Style() string {
	switch c {
	case CategoryArrival:
		return StyleArrival
	case CategoryFood:
		return StyleFood
	case CategoryPayment:
		return StylePayment
	case CategoryService:
		return StyleService
	default:
		return StyleGeneric
	}
}
