// Package timeline merges a booking's snapshot, activity stream and folio
// ledger into one newest-first list of display items.
package timeline

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/joshua-takyi/staydesk/internal/folio"
	"github.com/joshua-takyi/staydesk/internal/models"
)

const (
	TypeCheckIn        = "CHECK-IN"
	TypeCheckOut       = "CHECK-OUT"
	TypeBookingCreated = "BOOKING-CREATED"
	TypePreCheckin     = "PRE-CHECKIN"
	TypeRoomAssigned   = "ROOM_ASSIGNED"
	TypeRoomReassigned = "ROOM_REASSIGNED"
	TypeNoShow         = "NO_SHOW"
	TypeCancel         = "CANCEL"
	TypeCharge         = "CHARGE"
)

const (
	StyleArrival   = "arrival"
	StyleFood      = "food"
	StylePayment   = "payment"
	StyleService   = "service"
	StyleGeneric   = "generic"
	StyleCharge    = "charge"
	StyleMilestone = "milestone"
)

const (
	// SyntheticPriority places snapshot milestones ahead of anything else
	// recorded at the same instant.
	SyntheticPriority = 0
	// ChargePriority places ledger charges after activity events sharing
	// their timestamp.
	ChargePriority = 5
)

var (
	chargePrefix   = regexp.MustCompile(`(?i)^\s*charge\s+added\s*:\s*`)
	amountInParens = regexp.MustCompile(`(?i)\s*\(\s*(?:₹|rs\.?|inr)\s*\d[\d,]*(?:\.\d+)?\s*\)`)
	extraSpace     = regexp.MustCompile(`\s{2,}`)
)

type milestone struct {
	kind ArrivalKind
	item models.TimelineItem
}

// Build returns the unified timeline for booking. It is a pure function of
// its inputs: a nil booking gives an empty list and nothing in the inputs can
// make it fail.
func Build(booking *models.BookingSnapshot, ledger []models.LedgerEntry, activity []models.ActivityEvent, actors ActorResolver) []models.TimelineItem {
	if booking == nil {
		return []models.TimelineItem{}
	}

	milestones := snapshotMilestones(booking)

	// real arrival events replace the milestones derived from the snapshot
	seen := make(map[ArrivalKind]bool)
	events := make([]models.TimelineItem, 0, len(activity))
	for i, ev := range activity {
		category := NormalizeCategory(ev.EventCategory)
		if category == CategoryArrival {
			seen[NormalizeArrival(ev.EventType)] = true
		}
		events = append(events, activityItem(i, ev, category, actors))
	}

	charges := make([]models.TimelineItem, 0, len(ledger))
	for i, entry := range ledger {
		if item, ok := chargeItem(i, entry); ok {
			charges = append(charges, item)
		}
	}

	items := make([]models.TimelineItem, 0, len(milestones)+len(events)+len(charges))
	for _, m := range milestones {
		if m.kind != ArrivalUnknown && seen[m.kind] {
			continue
		}
		items = append(items, m.item)
	}
	items = append(items, events...)
	items = append(items, charges...)

	Sort(items)
	return items
}

// Sort orders items newest first; items sharing a timestamp go by ascending
// sort priority and otherwise keep their relative order. Unparseable
// timestamps sort last.
func Sort(items []models.TimelineItem) {
	slices.SortStableFunc(items, Compare)
}

func Compare(a, b models.TimelineItem) int {
	if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
		return c
	}
	return cmp.Compare(a.SortPriority, b.SortPriority)
}

func snapshotMilestones(b *models.BookingSnapshot) []milestone {
	id := b.ID.String()
	var out []milestone

	if b.ActualCheckinAt.IsSet() {
		desc := "Guest checked in"
		if room := strings.TrimSpace(b.RoomNumbers); room != "" {
			desc += " • Room " + room
		}
		out = append(out, milestone{kind: ArrivalCheckIn, item: syntheticItem(id, "checkin", TypeCheckIn, "Checked in", desc, b.ActualCheckinAt)})
	}
	if b.ActualCheckoutAt.IsSet() {
		out = append(out, milestone{kind: ArrivalCheckOut, item: syntheticItem(id, "checkout", TypeCheckOut, "Checked out", "Guest checked out", b.ActualCheckoutAt)})
	}
	if b.CreatedAt.IsSet() {
		desc := "Booking created"
		if code := strings.TrimSpace(b.Code); code != "" {
			desc = "Booking " + code + " created"
		}
		if src := strings.TrimSpace(b.Source); src != "" {
			desc += " via " + src
		}
		out = append(out, milestone{kind: ArrivalUnknown, item: syntheticItem(id, "created", TypeBookingCreated, "Booking created", desc, b.CreatedAt)})
	}
	return out
}

func syntheticItem(bookingID, suffix, typ, title, desc string, at models.Timestamp) models.TimelineItem {
	return models.TimelineItem{
		ID:           "synthetic-" + suffix + "-" + bookingID,
		Type:         typ,
		Timestamp:    at,
		Title:        title,
		Description:  desc,
		Style:        StyleMilestone,
		IsSynthetic:  true,
		Source:       models.SourceSnapshot,
		SourceID:     bookingID,
		SortPriority: SyntheticPriority,
	}
}

// itemID prefixes a row id; rows without one fall back to their input
// position so ids stay unique within a timeline.
func itemID(prefix string, id models.RowID, index int) string {
	if s := strings.TrimSpace(id.String()); s != "" {
		return prefix + "-" + s
	}
	return prefix + "-#" + strconv.Itoa(index)
}

func activityItem(index int, ev models.ActivityEvent, category Category, actors ActorResolver) models.TimelineItem {
	item := models.TimelineItem{
		ID:           itemID("activity", ev.ID, index),
		Type:         ev.EventType,
		Timestamp:    ev.EventTime,
		Style:        category.Style(),
		Source:       models.SourceActivity,
		SourceID:     ev.ID.String(),
		SortPriority: ev.SortPriority,
	}
	if ev.Amount != nil {
		amount := *ev.Amount
		item.Amount = &amount
	}

	switch category {
	case CategoryArrival:
		kind := NormalizeArrival(ev.EventType)
		if label, ok := arrivalLabels[kind]; ok {
			item.Type = label
		}
		item.Title = firstNonEmpty(ev.Title, arrivalTitles[kind], humanize(ev.EventType))
		item.Description = firstNonEmpty(ev.Title, ev.Description)
	case CategoryFood:
		item.Title = firstNonEmpty(ev.Title, "Food order")
		item.Description = strings.TrimSpace(ev.Description)
		if ev.Amount != nil {
			item.Description = joinNonEmpty(" ", item.Description, "("+folio.FormatAmount(*ev.Amount)+")")
		}
	case CategoryPayment:
		item.Title = firstNonEmpty(ev.Title, "Payment")
		item.Description = joinNonEmpty(" • ", strings.TrimSpace(ev.Description), "Collected by "+resolveActor(actors, ev.ActorID))
	case CategoryService:
		item.Title = firstNonEmpty(ev.Title, "Service request")
		item.Description = strings.TrimSpace(ev.Description)
	default:
		item.Title = firstNonEmpty(ev.Title, humanize(ev.EventType))
		item.Description = firstNonEmpty(ev.Description, ev.Title)
	}
	return item
}

var arrivalTitles = map[ArrivalKind]string{
	ArrivalCheckIn:        "Checked in",
	ArrivalCheckOut:       "Checked out",
	ArrivalPreCheckin:     "Pre-check-in submitted",
	ArrivalRoomAssigned:   "Room assigned",
	ArrivalRoomReassigned: "Room reassigned",
	ArrivalNoShow:         "Marked no-show",
	ArrivalCancel:         "Booking cancelled",
}

// chargeItem turns a ledger line into a CHARGE item. Payments, refunds and
// food charges are already visible through the activity stream.
func chargeItem(index int, e models.LedgerEntry) (models.TimelineItem, bool) {
	kind := e.Kind()
	if kind.IsSettlement() || kind == models.EntryFoodCharge {
		return models.TimelineItem{}, false
	}

	desc := CleanChargeDescription(e.Description)
	if desc == "" {
		desc = chargeTitle(kind)
	}
	amount := e.Amount
	return models.TimelineItem{
		ID:           itemID("ledger", e.ID, index),
		Type:         TypeCharge,
		Timestamp:    e.CreatedAt,
		Title:        chargeTitle(kind),
		Description:  desc + " • " + folio.FormatAmount(amount),
		Style:        StyleCharge,
		Source:       models.SourceLedger,
		SourceID:     e.ID.String(),
		SortPriority: ChargePriority,
		Amount:       &amount,
	}, true
}

func chargeTitle(kind models.EntryKind) string {
	if kind == models.EntryRoomCharge {
		return "Room charge"
	}
	return "Charge"
}

// CleanChargeDescription strips the "Charge Added:" prefix and any embedded
// "(₹500)" style amount that the backend bakes into ledger descriptions.
func CleanChargeDescription(s string) string {
	s = chargePrefix.ReplaceAllString(s, "")
	s = amountInParens.ReplaceAllString(s, "")
	s = extraSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// humanize turns "late_checkout_approved" into "Late checkout approved".
func humanize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	s = extraSpace.ReplaceAllString(s, " ")
	if s == "" {
		return "Activity"
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
