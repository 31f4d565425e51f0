package app

import (
	"context"
	"linguacert_backend/internal/config"
	"linguacert_backend/internal/controller"
	"linguacert_backend/internal/repository"
	"linguacert_backend/internal/service"
	"linguacert_backend/pkg/database"
	"linguacert_backend/pkg/logger"
	"linguacert_backend/pkg/monitoring"
	"linguacert_backend/pkg/security"
	"linguacert_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
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
	user     *repository.UserRepository
	admin    *repository.AdminRepository
	question *repository.QuestionRepository
	result   *repository.ResultRepository
	visit    *repository.VisitRepository
	schedule *repository.ScheduleRepository
}

type services struct {
	storage     *service.StorageService
	certificate *service.CertificateService
	question    *service.QuestionService
	exam        *service.ExamService
	mail        *service.MailService
	auth        *service.AuthService
	visit       *service.VisitService
	admin       *service.AdminService
}

type controllers struct {
	exam     *controller.ExamController
	question *controller.QuestionController
	auth     *controller.AuthController
	user     *controller.UserController
	admin    *controller.AdminController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		admin:    repository.NewAdminRepository(db),
		question: repository.NewQuestionRepository(db),
		result:   repository.NewResultRepository(db),
		visit:    repository.NewVisitRepository(db),
		schedule: repository.NewScheduleRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.certificate = service.NewCertificateService(s.storage)
	s.question = service.NewQuestionService(repos.question)
	s.exam = service.NewExamService(repos.question, repos.result, s.certificate)
	s.mail = service.NewMailService(&cfg.SMTP)
	s.auth = service.NewAuthService(repos.user, service.NewRedisCodeStore(rdb), s.mail, &cfg.JWT)
	s.visit = service.NewVisitService(repos.visit, &cfg.GeoIP)
	s.admin = service.NewAdminService(repos.admin, repos.user, repos.schedule, &cfg.JWT)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		exam:     controller.NewExamController(s.exam, s.question),
		question: controller.NewQuestionController(s.question),
		auth:     controller.NewAuthController(s.auth),
		user:     controller.NewUserController(s.auth),
		admin:    controller.NewAdminController(s.admin, s.visit, s.exam),
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

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)
	defer logger.Log.Sync()

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
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

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("linguacert-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	// 证书文件走静态路由, MinIO 模式下由对象存储直接提供
	if cfg.Storage.Type == "local" {
		router.Static("/certs", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
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
