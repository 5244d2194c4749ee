package models

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

type StayRepo interface {
	GetStay(ctx context.Context, bookingID uuid.UUID, accessToken string) (*BookingSnapshot, error)
	ListLedger(ctx context.Context, bookingID uuid.UUID, accessToken string) ([]LedgerEntry, error)
	ListActivity(ctx context.Context, bookingID uuid.UUID, accessToken string) ([]ActivityEvent, error)
	StaffNames(ctx context.Context, ids []string, accessToken string) ([]StaffProfile, error)
	ListFoodOrders(ctx context.Context, bookingID uuid.UUID, accessToken string) ([]FoodOrder, error)
	PaymentState(ctx context.Context, bookingID uuid.UUID, accessToken string) (*PaymentState, error)
	SubmitPreCheckin(ctx context.Context, p *PreCheckin, accessToken string) (*PreCheckin, error)
	CreateServiceRequest(ctx context.Context, r *ServiceRequest, accessToken string) (*ServiceRequest, error)
	RequestCheckout(ctx context.Context, bookingID uuid.UUID, accessToken string) error
}

type FolioRepo interface {
	CollectPayment(ctx context.Context, p *PaymentCollection, accessToken string) error
	CheckoutStay(ctx context.Context, bookingID uuid.UUID, accessToken string) error
}

const bookingColumns = "id,code,guest_name,guest_user_id,scheduled_checkin_at,scheduled_checkout_at," +
	"actual_checkin_at,actual_checkout_at,room_numbers,source,status,created_at"

func (su *SupabaseRepo) GetStay(ctx context.Context, bookingID uuid.UUID, accessToken string) (*BookingSnapshot, error) {
	if bookingID == uuid.Nil {
		return nil, fmt.Errorf("invalid booking ID")
	}
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %w", err)
	}

	raw, _, err := client.From(BookingsTable).
		Select(bookingColumns, "", false).
		Eq("id", bookingID.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	var rows []BookingSnapshot
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}
	return &rows[0], nil
}

func (su *SupabaseRepo) ListLedger(ctx context.Context, bookingID uuid.UUID, accessToken string) ([]LedgerEntry, error) {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %w", err)
	}

	raw, _, err := client.From(FolioEntriesTable).
		Select("id,booking_id,entry_type,amount,description,created_at", "", false).
		Eq("booking_id", bookingID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list folio entries: %w", err)
	}

	entries := []LedgerEntry{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal folio entries: %w", err)
	}
	return entries, nil
}

func (su *SupabaseRepo) ListActivity(ctx context.Context, bookingID uuid.UUID, accessToken string) ([]ActivityEvent, error) {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %w", err)
	}

	raw, _, err := client.From(BookingActivityView).
		Select("*", "", false).
		Eq("booking_id", bookingID.String()).
		Order("event_time", &postgrest.OrderOpts{Ascending: false}).
		Order("sort_priority", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list booking activity: %w", err)
	}

	events := []ActivityEvent{}
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking activity: %w", err)
	}
	return events, nil
}

// StaffNames loads the profiles of the given staff ids. Unknown ids are
// simply absent from the result.
func (su *SupabaseRepo) StaffNames(ctx context.Context, ids []string, accessToken string) ([]StaffProfile, error) {
	if len(ids) == 0 {
		return []StaffProfile{}, nil
	}
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %w", err)
	}

	raw, _, err := client.From(StaffProfilesTable).
		Select("id,full_name,role", "", false).
		In("id", ids).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to load staff profiles: %w", err)
	}

	staff := []StaffProfile{}
	if err := json.Unmarshal(raw, &staff); err != nil {
		return nil, fmt.Errorf("failed to unmarshal staff profiles: %w", err)
	}
	return staff, nil
}

func (su *SupabaseRepo) ListFoodOrders(ctx context.Context, bookingID uuid.UUID, accessToken string) ([]FoodOrder, error) {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %w", err)
	}

	raw, _, err := client.From(GuestFoodOrdersView).
		Select("*", "", false).
		Eq("booking_id", bookingID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list food orders: %w", err)
	}

	orders := []FoodOrder{}
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("failed to unmarshal food orders: %w", err)
	}
	return orders, nil
}

func (su *SupabaseRepo) PaymentState(ctx context.Context, bookingID uuid.UUID, accessToken string) (*PaymentState, error) {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %w", err)
	}

	raw, _, err := client.From(ArrivalPaymentView).
		Select("booking_id,payment_status,amount_due,amount_paid", "", false).
		Eq("booking_id", bookingID.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get payment state: %w", err)
	}

	var rows []PaymentState
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment state: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("payment state for %s: %w", bookingID, ErrNotFound)
	}
	return &rows[0], nil
}

// SubmitPreCheckin upserts on booking_id so a guest can resubmit before arrival.
func (su *SupabaseRepo) SubmitPreCheckin(ctx context.Context, p *PreCheckin, accessToken string) (*PreCheckin, error) {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %w", err)
	}

	raw, _, err := client.From(PreCheckinTable).
		Insert(p, true, "booking_id", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to save pre-checkin: %w", err)
	}

	var rows []PreCheckin
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pre-checkin: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no pre-checkin returned after insert")
	}
	return &rows[0], nil
}

func (su *SupabaseRepo) CreateServiceRequest(ctx context.Context, r *ServiceRequest, accessToken string) (*ServiceRequest, error) {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %w", err)
	}

	raw, _, err := client.From(ServiceRequestsTable).
		Insert(r, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create service request: %w", err)
	}

	var rows []ServiceRequest
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal service request: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no service request returned after insert")
	}
	return &rows[0], nil
}

func (su *SupabaseRepo) RequestCheckout(ctx context.Context, bookingID uuid.UUID, accessToken string) error {
	return su.callProcedure(RequestCheckoutRPC, map[string]string{"p_booking_id": bookingID.String()}, accessToken)
}

func (su *SupabaseRepo) CollectPayment(ctx context.Context, p *PaymentCollection, accessToken string) error {
	return su.callProcedure(CollectPaymentRPC, p, accessToken)
}

func (su *SupabaseRepo) CheckoutStay(ctx context.Context, bookingID uuid.UUID, accessToken string) error {
	return su.callProcedure(CheckoutStayRPC, map[string]string{"p_booking_id": bookingID.String()}, accessToken)
}

func (su *SupabaseRepo) callProcedure(name string, body interface{}, accessToken string) error {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return fmt.Errorf("failed to create authenticated client: %w", err)
	}
	if err := ParseRPCResult(client.Rpc(name, "", body)); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// RPCError is the error body PostgREST returns when a procedure raises.
type RPCError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *RPCError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (%s): %s", e.Message, e.Code, e.Details)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// ParseRPCResult turns the raw body of an RPC call into an error. The client
// reports transport failures as an empty body.
func ParseRPCResult(result string) error {
	result = strings.TrimSpace(result)
	if result == "" {
		return fmt.Errorf("empty response from procedure")
	}
	if !strings.HasPrefix(result, "{") {
		return nil
	}
	var rpcErr RPCError
	if err := json.Unmarshal([]byte(result), &rpcErr); err != nil {
		return nil
	}
	if rpcErr.Code != "" && rpcErr.Message != "" {
		return &rpcErr
	}
	return nil
}
