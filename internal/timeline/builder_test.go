package timeline

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshua-takyi/staydesk/internal/models"
)

var base = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func at(offset time.Duration) models.Timestamp {
	return models.NewTimestamp(base.Add(offset))
}

func amount(v float64) *float64 { return &v }

func testBooking() *models.BookingSnapshot {
	return &models.BookingSnapshot{
		ID:                  uuid.MustParse("7b0c6f43-6f1f-4c43-9d3c-5b8f0b6f2a10"),
		Code:                "BK-1042",
		GuestName:           "Asha Verma",
		ScheduledCheckinAt:  at(2 * time.Hour),
		ScheduledCheckoutAt: at(50 * time.Hour),
		CreatedAt:           at(-72 * time.Hour),
		Source:              "website",
	}
}

func countType(items []models.TimelineItem, typ string) int {
	n := 0
	for _, it := range items {
		if it.Type == typ {
			n++
		}
	}
	return n
}

func TestBuild_NilBookingIsEmpty(t *testing.T) {
	items := Build(nil, nil, nil, nil)
	require.NotNil(t, items)
	assert.Empty(t, items)

	items = Build(nil, []models.LedgerEntry{{ID: "1", EntryType: "ROOM_CHARGE", Amount: 10}}, []models.ActivityEvent{{ID: "2"}}, nil)
	assert.Empty(t, items)
}

func TestBuild_SnapshotOnly(t *testing.T) {
	b := testBooking()
	b.ActualCheckinAt = at(3 * time.Hour)
	b.RoomNumbers = "204"

	items := Build(b, nil, nil, ActorNames{})
	require.Len(t, items, 2)

	assert.Equal(t, TypeCheckIn, items[0].Type)
	assert.True(t, items[0].IsSynthetic)
	assert.Equal(t, "Guest checked in • Room 204", items[0].Description)
	assert.Equal(t, TypeBookingCreated, items[1].Type)
	assert.True(t, items[1].IsSynthetic)
	assert.Equal(t, "Booking BK-1042 created via website", items[1].Description)
	for _, it := range items {
		assert.Equal(t, StyleMilestone, it.Style)
		assert.Equal(t, models.SourceSnapshot, it.Source)
	}
}

func TestBuild_NoTimestampsNoItems(t *testing.T) {
	b := &models.BookingSnapshot{ID: uuid.New()}
	assert.Empty(t, Build(b, nil, nil, nil))
}

func TestBuild_SyntheticCheckinSuppressedByRealEvent(t *testing.T) {
	b := testBooking()
	b.ActualCheckinAt = at(3 * time.Hour)

	activity := []models.ActivityEvent{
		{ID: "a1", EventCategory: "ARRIVAL", EventType: "checked_in", EventTime: at(3 * time.Hour), Title: "Checked in by front desk"},
	}
	items := Build(b, nil, activity, nil)

	assert.Equal(t, 1, countType(items, TypeCheckIn))
	for _, it := range items {
		if it.Type == TypeCheckIn {
			assert.False(t, it.IsSynthetic)
			assert.Equal(t, "activity-a1", it.ID)
		}
	}
}

func TestBuild_SyntheticCheckinRetained(t *testing.T) {
	b := testBooking()
	b.ActualCheckinAt = at(3 * time.Hour)

	activity := []models.ActivityEvent{
		{ID: "a1", EventCategory: "SERVICE", EventType: "towels", EventTime: at(5 * time.Hour), Description: "Extra towels"},
	}
	items := Build(b, nil, activity, nil)

	require.Equal(t, 1, countType(items, TypeCheckIn))
	for _, it := range items {
		if it.Type == TypeCheckIn {
			assert.True(t, it.IsSynthetic)
		}
	}
}

func TestBuild_SuppressionHandlesSynonyms(t *testing.T) {
	for _, raw := range []string{"CHECKIN", "check-in", "Checked In", "inhouse", "IN_HOUSE"} {
		t.Run(raw, func(t *testing.T) {
			b := testBooking()
			b.ActualCheckinAt = at(3 * time.Hour)
			items := Build(b, nil, []models.ActivityEvent{
				{ID: "x", EventCategory: "arrival", EventType: raw, EventTime: at(3 * time.Hour)},
			}, nil)
			assert.Equal(t, 1, countType(items, TypeCheckIn))
		})
	}
}

func TestBuild_CheckoutSuppression(t *testing.T) {
	b := testBooking()
	b.ActualCheckinAt = at(3 * time.Hour)
	b.ActualCheckoutAt = at(49 * time.Hour)

	items := Build(b, nil, []models.ActivityEvent{
		{ID: "c", EventCategory: "ARRIVAL", EventType: "CHECKED_OUT", EventTime: at(49 * time.Hour)},
	}, nil)

	assert.Equal(t, 1, countType(items, TypeCheckOut))
	assert.Equal(t, 1, countType(items, TypeCheckIn))
	for _, it := range items {
		switch it.Type {
		case TypeCheckOut:
			assert.False(t, it.IsSynthetic)
		case TypeCheckIn:
			assert.True(t, it.IsSynthetic)
		}
	}
}

func TestBuild_NonArrivalCheckinDoesNotSuppress(t *testing.T) {
	b := testBooking()
	b.ActualCheckinAt = at(3 * time.Hour)

	items := Build(b, nil, []models.ActivityEvent{
		{ID: "x", EventCategory: "SERVICE", EventType: "CHECKED_IN", EventTime: at(3 * time.Hour)},
	}, nil)

	assert.Equal(t, 1, countType(items, TypeCheckIn))
	assert.Equal(t, 1, countType(items, "CHECKED_IN"))
}

func TestBuild_ChargeFiltering(t *testing.T) {
	ledger := []models.LedgerEntry{
		{ID: "l1", EntryType: "ROOM_CHARGE", Amount: 5000, Description: "Room night", CreatedAt: at(4 * time.Hour)},
		{ID: "l2", EntryType: "FOOD_CHARGE", Amount: 800, Description: "Dinner", CreatedAt: at(5 * time.Hour)},
		{ID: "l3", EntryType: "PAYMENT", Amount: 2000, Description: "Advance", CreatedAt: at(6 * time.Hour)},
		{ID: "l4", EntryType: "REFUND", Amount: 100, Description: "Refund", CreatedAt: at(7 * time.Hour)},
		{ID: "l5", EntryType: "MINIBAR", Amount: 120, Description: "Minibar", CreatedAt: at(8 * time.Hour)},
	}
	items := Build(testBooking(), ledger, nil, nil)

	var charged []string
	for _, it := range items {
		if it.Type == TypeCharge {
			charged = append(charged, it.SourceID)
			assert.Equal(t, ChargePriority, it.SortPriority)
			assert.Equal(t, models.SourceLedger, it.Source)
		}
	}
	assert.ElementsMatch(t, []string{"l1", "l5"}, charged)
}

func TestBuild_ChargeDescriptionCleanup(t *testing.T) {
	ledger := []models.LedgerEntry{
		{ID: "l1", EntryType: "ROOM_CHARGE", Amount: 500, Description: "Charge Added: Extra Bed (₹500)", CreatedAt: at(4 * time.Hour)},
	}
	items := Build(testBooking(), ledger, nil, nil)

	var found bool
	for _, it := range items {
		if it.Type == TypeCharge {
			found = true
			assert.Equal(t, "Extra Bed • ₹500", it.Description)
		}
	}
	assert.True(t, found)
}

func TestCleanChargeDescription(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Charge Added: Extra Bed (₹500)", "Extra Bed"},
		{"charge added:Late checkout (₹1,200.50) fee", "Late checkout fee"},
		{"Airport pickup (Rs. 900)", "Airport pickup"},
		{"Spa (2 sessions)", "Spa (2 sessions)"},
		{"  Charge Added:  ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanChargeDescription(tt.in), tt.in)
	}
}

func TestBuild_EmptyChargeDescriptionFallsBack(t *testing.T) {
	items := Build(testBooking(), []models.LedgerEntry{
		{ID: "l1", EntryType: "ROOM_CHARGE", Amount: 2500, Description: "Charge Added: (₹2,500)", CreatedAt: at(time.Hour)},
	}, nil, nil)
	require.Equal(t, TypeCharge, items[0].Type)
	assert.Equal(t, "Room charge • ₹2,500", items[0].Description)
}

func TestBuild_CategoryMapping(t *testing.T) {
	actors := ActorNames{"staff-1": "Ravi Kumar"}
	activity := []models.ActivityEvent{
		{ID: "1", EventCategory: "ARRIVAL", EventType: "ROOM_ASSIGNED", EventTime: at(6 * time.Hour), Description: "Room 204 assigned"},
		{ID: "2", EventCategory: "FOOD", EventType: "ORDER_PLACED", EventTime: at(5 * time.Hour), Description: "Masala dosa x2", Amount: amount(450)},
		{ID: "3", EventCategory: "PAYMENT", EventType: "PAYMENT_COLLECTED", EventTime: at(4 * time.Hour), Description: "₹2,000 via UPI", ActorID: "staff-1"},
		{ID: "4", EventCategory: "SERVICE", EventType: "HOUSEKEEPING", EventTime: at(3 * time.Hour), Description: "Room cleaned"},
		{ID: "5", EventCategory: "LOYALTY", EventType: "points_awarded", EventTime: at(2 * time.Hour), Title: "Points awarded"},
	}
	items := Build(&models.BookingSnapshot{ID: uuid.New()}, nil, activity, actors)
	require.Len(t, items, 5)

	byID := map[string]models.TimelineItem{}
	for _, it := range items {
		byID[it.SourceID] = it
	}

	assert.Equal(t, TypeRoomAssigned, byID["1"].Type)
	assert.Equal(t, StyleArrival, byID["1"].Style)
	assert.Equal(t, "Room 204 assigned", byID["1"].Description)

	assert.Equal(t, "ORDER_PLACED", byID["2"].Type)
	assert.Equal(t, StyleFood, byID["2"].Style)
	assert.Equal(t, "Masala dosa x2 (₹450)", byID["2"].Description)

	assert.Equal(t, "PAYMENT_COLLECTED", byID["3"].Type)
	assert.Equal(t, StylePayment, byID["3"].Style)
	assert.Equal(t, "₹2,000 via UPI • Collected by Ravi Kumar", byID["3"].Description)

	assert.Equal(t, StyleService, byID["4"].Style)
	assert.Equal(t, "Room cleaned", byID["4"].Description)

	assert.Equal(t, "points_awarded", byID["5"].Type)
	assert.Equal(t, StyleGeneric, byID["5"].Style)
	assert.Equal(t, "Points awarded", byID["5"].Description)
}

func TestBuild_ArrivalPrefersTitle(t *testing.T) {
	items := Build(&models.BookingSnapshot{ID: uuid.New()}, nil, []models.ActivityEvent{
		{ID: "1", EventCategory: "ARRIVAL", EventType: "no-show", EventTime: at(0), Title: "Guest did not arrive", Description: "auto"},
	}, nil)
	require.Len(t, items, 1)
	assert.Equal(t, TypeNoShow, items[0].Type)
	assert.Equal(t, "Guest did not arrive", items[0].Description)
}

func TestBuild_UnknownActorFallsBackToSystem(t *testing.T) {
	activity := []models.ActivityEvent{
		{ID: "p1", EventCategory: "PAYMENT", EventType: "PAYMENT_COLLECTED", EventTime: at(0), Description: "Card", ActorID: "ghost"},
		{ID: "p2", EventCategory: "PAYMENT", EventType: "PAYMENT_COLLECTED", EventTime: at(-time.Hour)},
	}
	items := Build(&models.BookingSnapshot{ID: uuid.New()}, nil, activity, ActorNames{"staff-1": "Ravi"})
	require.Len(t, items, 2)
	assert.Contains(t, items[0].Description, "Collected by System")
	assert.Equal(t, "Collected by System", items[1].Description)

	items = Build(&models.BookingSnapshot{ID: uuid.New()}, nil, activity, nil)
	assert.Contains(t, items[0].Description, "Collected by System")
}

func TestBuild_ActorFunc(t *testing.T) {
	lookups := 0
	resolver := ActorFunc(func(id string) (string, bool) {
		lookups++
		return "Meera", id == "m"
	})
	items := Build(&models.BookingSnapshot{ID: uuid.New()}, nil, []models.ActivityEvent{
		{ID: "p", EventCategory: "PAYMENT", EventType: "PAYMENT_COLLECTED", EventTime: at(0), ActorID: "m"},
	}, resolver)
	assert.Equal(t, "Collected by Meera", items[0].Description)
	assert.Equal(t, 1, lookups)
}

func mixedInputs() (*models.BookingSnapshot, []models.LedgerEntry, []models.ActivityEvent) {
	b := testBooking()
	b.ActualCheckinAt = at(3 * time.Hour)
	ledger := []models.LedgerEntry{
		{ID: "l1", EntryType: "ROOM_CHARGE", Amount: 5000, Description: "Night 1", CreatedAt: at(3 * time.Hour)},
		{ID: "l2", EntryType: "OTHER", Amount: 300, Description: "Laundry", CreatedAt: at(3 * time.Hour)},
		{ID: "l3", EntryType: "ROOM_CHARGE", Amount: 5000, Description: "Night 2", CreatedAt: at(27 * time.Hour)},
	}
	activity := []models.ActivityEvent{
		{ID: "e1", EventCategory: "SERVICE", EventType: "LAUNDRY", EventTime: at(3 * time.Hour), SortPriority: 2},
		{ID: "e2", EventCategory: "FOOD", EventType: "ORDER", EventTime: at(3 * time.Hour), SortPriority: 1},
		{ID: "e3", EventCategory: "PAYMENT", EventType: "PAID", EventTime: at(10 * time.Hour), ActorID: "s1"},
		{ID: "e4", EventCategory: "SERVICE", EventType: "BROKEN", EventTime: models.ParseTimestamp("yesterday-ish")},
		{ID: "e5", EventCategory: "SERVICE", EventType: "LAUNDRY", EventTime: at(3 * time.Hour), SortPriority: 2},
	}
	return b, ledger, activity
}

func TestBuild_ItemIDsUniqueWithoutRowIDs(t *testing.T) {
	b := testBooking()
	b.ActualCheckinAt = at(3 * time.Hour)
	activity := []models.ActivityEvent{
		{EventCategory: "service", EventType: "TOWELS", EventTime: at(4 * time.Hour)},
		{EventCategory: "service", EventType: "PILLOWS", EventTime: at(5 * time.Hour)},
		{ID: "9", EventCategory: "food", EventType: "ORDER_PLACED", EventTime: at(6 * time.Hour)},
	}
	ledger := []models.LedgerEntry{
		{EntryType: "ROOM_CHARGE", Amount: 3000, CreatedAt: at(7 * time.Hour)},
		{EntryType: "OTHER", Amount: 500, CreatedAt: at(8 * time.Hour)},
	}

	items := Build(b, ledger, activity, ActorNames{})
	require.Len(t, items, 7)

	ids := make(map[string]bool, len(items))
	for _, it := range items {
		assert.False(t, ids[it.ID], "duplicate id %q", it.ID)
		ids[it.ID] = true
	}
	assert.True(t, ids["activity-#0"])
	assert.True(t, ids["activity-#1"])
	assert.True(t, ids["activity-9"])
	assert.True(t, ids["ledger-#0"])
	assert.True(t, ids["ledger-#1"])
}

func TestBuild_AlwaysSorted(t *testing.T) {
	b, ledger, activity := mixedInputs()
	items := Build(b, ledger, activity, ActorNames{"s1": "Ravi"})

	for i := 1; i < len(items); i++ {
		x, y := items[i-1], items[i]
		if !y.Timestamp.Valid {
			continue
		}
		require.True(t, x.Timestamp.Valid, "unparseable timestamps must sort last")
		if x.Timestamp.Time.Equal(y.Timestamp.Time) {
			assert.LessOrEqual(t, x.SortPriority, y.SortPriority, "%s before %s", x.ID, y.ID)
		} else {
			assert.True(t, x.Timestamp.Time.After(y.Timestamp.Time), "%s before %s", x.ID, y.ID)
		}
	}
	assert.Equal(t, "activity-e4", items[len(items)-1].ID)
}

func TestBuild_TieOrderIsStable(t *testing.T) {
	b, ledger, activity := mixedInputs()
	items := Build(b, ledger, activity, nil)

	var ids []string
	for _, it := range items {
		if it.Timestamp.Valid && it.Timestamp.Time.Equal(base.Add(3*time.Hour)) {
			ids = append(ids, it.ID)
		}
	}
	// milestone (0), food (1), both laundry events (2) in input order, then charges (5) in ledger order
	assert.Equal(t, []string{
		"synthetic-checkin-" + b.ID.String(),
		"activity-e2",
		"activity-e1",
		"activity-e5",
		"ledger-l1",
		"ledger-l2",
	}, ids)
}

func TestBuild_Idempotent(t *testing.T) {
	b, ledger, activity := mixedInputs()
	actors := ActorNames{"s1": "Ravi"}

	first, err := json.Marshal(Build(b, ledger, activity, actors))
	require.NoError(t, err)
	second, err := json.Marshal(Build(b, ledger, activity, actors))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestBuild_DoesNotMutateInputs(t *testing.T) {
	b, ledger, activity := mixedInputs()
	activity[1].Amount = amount(450)
	before, _ := json.Marshal(activity)

	items := Build(b, ledger, activity, nil)
	for i := range items {
		if items[i].Amount != nil {
			*items[i].Amount = -1
		}
	}
	after, _ := json.Marshal(activity)
	assert.Equal(t, string(before), string(after))
}

func TestBuild_ResortsAfterRoundTrip(t *testing.T) {
	b, ledger, activity := mixedInputs()
	items := Build(b, ledger, activity, nil)

	raw, err := json.Marshal(items)
	require.NoError(t, err)
	var decoded []models.TimelineItem
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// reverse, then sort again: the order lives in the data
	for i, j := 0, len(decoded)-1; i < j; i, j = i+1, j-1 {
		decoded[i], decoded[j] = decoded[j], decoded[i]
	}
	Sort(decoded)

	want := make([]string, len(items))
	got := make([]string, len(decoded))
	for i := range items {
		want[i] = items[i].ID
		got[i] = decoded[i].ID
	}
	// equal (timestamp, priority) pairs may swap after reversal; compare the keys instead
	for i := range items {
		assert.Equal(t, 0, Compare(items[i], decoded[i]), "position %d: %s vs %s", i, want[i], got[i])
	}
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Late checkout approved", humanize("LATE_CHECKOUT_APPROVED"))
	assert.Equal(t, "Activity", humanize("  "))
	assert.True(t, strings.HasPrefix(humanize("élan-vital"), "Élan"))
}
