package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ReviewColName = "guest_reviews"

// ErrAlreadyExists is returned when a guest reviews the same stay twice.
var ErrAlreadyExists = errors.New("already exists")

// CategoryRatings are optional; zero means the guest skipped the category.
type CategoryRatings struct {
	Cleanliness int `bson:"cleanliness" json:"cleanliness" validate:"min=0,max=5"`
	Service     int `bson:"service" json:"service" validate:"min=0,max=5"`
	Food        int `bson:"food" json:"food" validate:"min=0,max=5"`
	Comfort     int `bson:"comfort" json:"comfort" validate:"min=0,max=5"`
	Value       int `bson:"value" json:"value" validate:"min=0,max=5"`
}

type GuestReview struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookingID  string             `bson:"booking_id" json:"booking_id"`
	GuestID    string             `bson:"guest_id" json:"guest_id"`
	GuestName  string             `bson:"guest_name,omitempty" json:"guest_name,omitempty"`
	Overall    int                `bson:"overall" json:"overall" validate:"required,min=1,max=5"`
	Ratings    CategoryRatings    `bson:"ratings" json:"ratings"`
	Comment    string             `bson:"comment" json:"comment" validate:"max=2000"`
	Highlights []string           `bson:"highlights,omitempty" json:"highlights,omitempty" validate:"max=10,dive,max=40"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// ExperienceStats aggregates reviews written since a point in time.
type ExperienceStats struct {
	Since              time.Time     `json:"since"`
	Reviews            int64         `json:"reviews"`
	AverageOverall     float64       `json:"average_overall"`
	AverageCleanliness float64       `json:"average_cleanliness"`
	AverageService     float64       `json:"average_service"`
	AverageFood        float64       `json:"average_food"`
	AverageComfort     float64       `json:"average_comfort"`
	AverageValue       float64       `json:"average_value"`
	Distribution       map[int]int64 `json:"distribution"`
}

type ReviewsRepo interface {
	CreateReview(ctx context.Context, review *GuestReview) (*GuestReview, error)
	ListReviewsByBooking(ctx context.Context, bookingID string) ([]*GuestReview, error)
	ExperienceStats(ctx context.Context, since time.Time) (*ExperienceStats, error)
	EnsureIndexes(ctx context.Context) error
}

func (r *GuestReview) BeforeCreate() {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
}

func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ReviewColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	indexes := []mongo.IndexModel{
		// one review per guest per stay
		{
			Keys: bson.D{
				{Key: "booking_id", Value: 1},
				{Key: "guest_id", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("booking_guest_unique"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_at_idx"),
		},
	}

	if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("error creating indexes: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) CreateReview(ctx context.Context, review *GuestReview) (*GuestReview, error) {
	col, err := mdb.GetCollection(ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	review.BeforeCreate()
	if _, err := col.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("review for booking %s: %w", review.BookingID, ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to insert review: %w", err)
	}
	return review, nil
}

func (mdb *MongodbRepo) ListReviewsByBooking(ctx context.Context, bookingID string) ([]*GuestReview, error) {
	col, err := mdb.GetCollection(ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{"booking_id": bookingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []*GuestReview{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("error decoding reviews: %w", err)
	}
	return reviews, nil
}

// ratedOnly feeds $avg a null for skipped categories so they do not drag the
// average towards zero.
func ratedOnly(field string) bson.M {
	return bson.M{"$cond": bson.A{
		bson.M{"$gt": bson.A{field, 0}}, field, nil,
	}}
}

func (mdb *MongodbRepo) ExperienceStats(ctx context.Context, since time.Time) (*ExperienceStats, error) {
	col, err := mdb.GetCollection(ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	match := bson.D{{Key: "$match", Value: bson.M{"created_at": bson.M{"$gte": since}}}}

	averagesPipeline := mongo.Pipeline{
		match,
		{{Key: "$group", Value: bson.M{
			"_id":         nil,
			"reviews":     bson.M{"$sum": 1},
			"overall":     bson.M{"$avg": "$overall"},
			"cleanliness": bson.M{"$avg": ratedOnly("$ratings.cleanliness")},
			"service":     bson.M{"$avg": ratedOnly("$ratings.service")},
			"food":        bson.M{"$avg": ratedOnly("$ratings.food")},
			"comfort":     bson.M{"$avg": ratedOnly("$ratings.comfort")},
			"value":       bson.M{"$avg": ratedOnly("$ratings.value")},
		}}},
	}
	avgCursor, err := col.Aggregate(ctx, averagesPipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating review averages: %w", err)
	}
	defer avgCursor.Close(ctx)

	var averages []struct {
		Reviews     int64   `bson:"reviews"`
		Overall     float64 `bson:"overall"`
		Cleanliness float64 `bson:"cleanliness"`
		Service     float64 `bson:"service"`
		Food        float64 `bson:"food"`
		Comfort     float64 `bson:"comfort"`
		Value       float64 `bson:"value"`
	}
	if err := avgCursor.All(ctx, &averages); err != nil {
		return nil, fmt.Errorf("error decoding review averages: %w", err)
	}

	stats := &ExperienceStats{
		Since:        since,
		Distribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(averages) == 0 {
		return stats, nil
	}
	a := averages[0]
	stats.Reviews = a.Reviews
	stats.AverageOverall = a.Overall
	stats.AverageCleanliness = a.Cleanliness
	stats.AverageService = a.Service
	stats.AverageFood = a.Food
	stats.AverageComfort = a.Comfort
	stats.AverageValue = a.Value

	distributionPipeline := mongo.Pipeline{
		match,
		{{Key: "$group", Value: bson.M{
			"_id":   "$overall",
			"count": bson.M{"$sum": 1},
		}}},
	}
	distCursor, err := col.Aggregate(ctx, distributionPipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating rating distribution: %w", err)
	}
	defer distCursor.Close(ctx)

	var buckets []struct {
		Rating int   `bson:"_id"`
		Count  int64 `bson:"count"`
	}
	if err := distCursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("error decoding rating distribution: %w", err)
	}
	for _, b := range buckets {
		stats.Distribution[b.Rating] = b.Count
	}

	return stats, nil
}
