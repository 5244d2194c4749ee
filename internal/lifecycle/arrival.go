package lifecycle

import (
	"strings"
)

// ArrivalState is the operational state the arrivals dashboard shows as a
// badge. The server computes it; exactly one applies per row.
type ArrivalState string

const (
	ArrivalExpected            ArrivalState = "EXPECTED"
	ArrivalReady               ArrivalState = "READY"
	ArrivalWaitingHousekeeping ArrivalState = "WAITING_HOUSEKEEPING"
	ArrivalPartiallyArrived    ArrivalState = "PARTIALLY_ARRIVED"
	ArrivalCheckedIn           ArrivalState = "CHECKED_IN"
	ArrivalNoShow              ArrivalState = "NO_SHOW"
	ArrivalOther               ArrivalState = "OTHER"
)

// ArrivalStates in dashboard display order.
var ArrivalStates = []ArrivalState{
	ArrivalExpected,
	ArrivalWaitingHousekeeping,
	ArrivalReady,
	ArrivalPartiallyArrived,
	ArrivalCheckedIn,
	ArrivalNoShow,
}

type Badge struct {
	State ArrivalState `json:"state"`
	Label string       `json:"label"`
	Tone  string       `json:"tone"`
}

var badges = map[ArrivalState]Badge{
	ArrivalExpected:            {ArrivalExpected, "Expected", "neutral"},
	ArrivalReady:               {ArrivalReady, "Ready", "green"},
	ArrivalWaitingHousekeeping: {ArrivalWaitingHousekeeping, "Waiting housekeeping", "amber"},
	ArrivalPartiallyArrived:    {ArrivalPartiallyArrived, "Partially arrived", "blue"},
	ArrivalCheckedIn:           {ArrivalCheckedIn, "Checked in", "green"},
	ArrivalNoShow:              {ArrivalNoShow, "No show", "red"},
	ArrivalOther:               {ArrivalOther, "Other", "neutral"},
}

func NormalizeArrivalState(raw string) ArrivalState {
	s := ArrivalState(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := badges[s]; ok {
		return s
	}
	return ArrivalOther
}

// BadgeFor returns the single badge for a raw operational state. A partially
// arrived party is never shown as Ready, even when its room is.
func BadgeFor(raw string) Badge {
	return badges[NormalizeArrivalState(raw)]
}
