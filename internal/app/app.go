package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"skillsphere_backend/internal/config"
	"skillsphere_backend/internal/controller"
	"skillsphere_backend/internal/repository"
	"skillsphere_backend/internal/service"
	"skillsphere_backend/pkg/database"
	"skillsphere_backend/pkg/logger"
	"skillsphere_backend/pkg/monitoring"
	"skillsphere_backend/pkg/security"
	"skillsphere_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user       *repository.UserRepository
	quiz       *repository.QuizRepository
	skill      *repository.SkillRepository
	enrollment *repository.EnrollmentRepository
	schedule   *repository.ScheduleRepository
	chat       *repository.ChatRepository
}

type services struct {
	ai             *service.AIService
	auth           *service.AuthService
	user           *service.UserService
	quiz           *service.QuizService
	recommendation *service.RecommendationService
	enrollment     *service.EnrollmentService
	schedule       *service.ScheduleService
	chat           *service.ChatService
	mentor         *service.MentorService
}

type controllers struct {
	auth     *controller.AuthController
	user     *controller.UserController
	quiz     *controller.QuizController
	course   *controller.CourseController
	schedule *controller.ScheduleController
	chat     *controller.ChatController
	mentor   *controller.MentorController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		quiz:       repository.NewQuizRepository(db),
		skill:      repository.NewSkillRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		schedule:   repository.NewScheduleRepository(db),
		chat:       repository.NewChatRepository(db, rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.ai = service.NewAIService(cfg.AI)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.skill)
	s.quiz = service.NewQuizService(repos.user, repos.quiz, repos.skill, s.ai)
	s.recommendation = service.NewRecommendationService(repos.user, repos.skill, s.ai)
	s.enrollment = service.NewEnrollmentService(repos.user, repos.enrollment)
	s.schedule = service.NewScheduleService(repos.user, repos.schedule, repos.enrollment, s.ai)
	s.chat = service.NewChatService(repos.user, repos.skill, repos.enrollment, repos.chat, s.ai, cfg.AI.MaxTokens)
	s.mentor = service.NewMentorService(repos.user, repos.skill, repos.enrollment)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		user:     controller.NewUserController(s.user),
		quiz:     controller.NewQuizController(s.quiz),
		course:   controller.NewCourseController(s.recommendation, s.enrollment),
		schedule: controller.NewScheduleController(s.schedule),
		chat:     controller.NewChatController(s.chat),
		mentor:   controller.NewMentorController(s.mentor),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("skillsphere", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
