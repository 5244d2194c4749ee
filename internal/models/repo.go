package models

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = validator.New()

// ErrNotFound is returned by repositories when a row or document does not exist.
var ErrNotFound = errors.New("not found")

const (
	BookingsTable        = "bookings"
	FolioEntriesTable    = "folio_entries"
	StaffProfilesTable   = "staff_profiles"
	ProfileTable         = "profiles"
	PreCheckinTable      = "precheckin_submissions"
	ServiceRequestsTable = "service_requests"
	JobApplicationsTable = "job_applications"

	BookingActivityView  = "v_booking_activity"
	GuestFoodOrdersView  = "v_guest_food_orders"
	ArrivalPaymentView   = "v_arrival_payment_state"
	ArrivalDashboardView = "v_arrival_dashboard_rows"

	CollectPaymentRPC  = "collect_payment"
	RequestCheckoutRPC = "request_checkout"
	CheckoutStayRPC    = "checkout_stay"
)

type SupabaseRepo struct {
	supabaseClient *supabase.Client
	url            string
	key            string
}

func SupabaseNewRepo(supabaseClient *supabase.Client, url, key string) *SupabaseRepo {
	return &SupabaseRepo{
		supabaseClient: supabaseClient,
		url:            url,
		key:            key,
	}
}

// GetAuthenticatedClient returns a Supabase client that runs queries under
// the caller's session so row level security applies. An empty token keeps
// the shared anon client.
func (su *SupabaseRepo) GetAuthenticatedClient(accessToken string) (*supabase.Client, error) {
	if accessToken == "" || su.url == "" || su.key == "" {
		return su.supabaseClient, nil
	}

	options := &supabase.ClientOptions{
		Headers: map[string]string{
			"Authorization": "Bearer " + accessToken,
		},
	}

	return supabase.NewClient(su.url, su.key, options)
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

func (mdb *MongodbRepo) GetCollection(colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, errors.New("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(mdb.dbName).Collection(colName), nil
}
