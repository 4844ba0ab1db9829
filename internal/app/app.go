package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"examprep_backend/internal/config"
	"examprep_backend/internal/controller"
	"examprep_backend/internal/repository"
	"examprep_backend/internal/service"
	"examprep_backend/pkg/database"
	"examprep_backend/pkg/logger"
	"examprep_backend/pkg/monitoring"
	"examprep_backend/pkg/security"
	"examprep_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	inviteCode *repository.InviteCodeRepository
	course     *repository.CourseRepository
	topic      *repository.TopicRepository
	card       *repository.LearnCardRepository
	template   *repository.QuestionTemplateRepository
	attempt    *repository.PracticeAttemptRepository
	progress   *repository.ProgressRepository
	cheatSheet *repository.CheatSheetRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	content    *service.ContentService
	learn      *service.LearnService
	practice   *service.PracticeService
	progress   *service.ProgressService
	cheatSheet *service.CheatSheetService
	storage    *service.StorageService
}

type controllers struct {
	auth         *controller.AuthController
	course       *controller.CourseController
	learn        *controller.LearnController
	practice     *controller.PracticeController
	progress     *controller.ProgressController
	cheatSheet   *controller.CheatSheetController
	adminContent *controller.AdminContentController
	user         *controller.UserController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig 配置热更新入口，由 configwatcher 调用
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("配置已热更新")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		inviteCode: repository.NewInviteCodeRepository(db),
		course:     repository.NewCourseRepository(db),
		topic:      repository.NewTopicRepository(db),
		card:       repository.NewLearnCardRepository(db),
		template:   repository.NewQuestionTemplateRepository(db),
		attempt:    repository.NewPracticeAttemptRepository(db),
		progress:   repository.NewProgressRepository(db),
		cheatSheet: repository.NewCheatSheetRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.inviteCode, cfg, db)
	s.user = service.NewUserService(repos.user, repos.inviteCode)
	s.content = service.NewContentService(repos.course, repos.topic, repos.card, repos.template)
	s.learn = service.NewLearnService(repos.card, repos.topic, repos.progress, rdb)
	s.practice = service.NewPracticeService(repos.template, repos.attempt, repos.progress, repos.topic, rdb)
	s.progress = service.NewProgressService(repos.topic, repos.card, repos.template, repos.progress, rdb)
	s.cheatSheet = service.NewCheatSheetService(repos.cheatSheet, repos.card, repos.topic)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth, s.user),
		course:       controller.NewCourseController(s.content, s.progress),
		learn:        controller.NewLearnController(s.learn),
		practice:     controller.NewPracticeController(s.practice, s.content, s.progress),
		progress:     controller.NewProgressController(s.progress),
		cheatSheet:   controller.NewCheatSheetController(s.cheatSheet),
		adminContent: controller.NewAdminContentController(s.content, s.storage),
		user:         controller.NewUserController(s.user),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("examprep-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

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

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
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
