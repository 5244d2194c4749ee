package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/staydesk/internal/config"
	"github.com/joshua-takyi/staydesk/internal/helpers"
	"github.com/joshua-takyi/staydesk/internal/models"
	"github.com/joshua-takyi/staydesk/internal/services"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client
	Cloudinary     *cloudinary.Cloudinary

	Reviews models.ReviewsRepo

	UserService      *services.UserService
	StayService      *services.StayService
	FolioService     *services.FolioService
	DashboardService *services.DashboardService
	ReviewService    *services.ReviewService
	HiringService    *services.HiringService
}

func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	cld *cloudinary.Cloudinary,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
) *Container {
	supa := models.SupabaseNewRepo(supabaseClient, cfg.SupabaseURL, cfg.SupabaseAnonKey)
	mongo := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBName)

	stayService := services.NewStayService(supa, helpers.NewCloudinaryStore(cld), logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		SupabaseClient:   supabaseClient,
		MongoDBClient:    mongoDBClient,
		Cloudinary:       cld,
		Reviews:          mongo,
		UserService:      services.NewUserService(supa),
		StayService:      stayService,
		FolioService:     services.NewFolioService(supa, supa, stayService),
		DashboardService: services.NewDashboardService(supa, mongo, cfg.Location()),
		ReviewService:    services.NewReviewService(supa, mongo),
		HiringService:    services.NewHiringService(supa),
	}
}
