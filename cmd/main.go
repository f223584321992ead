package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/robfig/cron/v3"
	httpSwagger "github.com/swaggo/http-swagger"

	"report-web-server/config"
	_ "report-web-server/docs"
	"report-web-server/internal/handler"
	"report-web-server/internal/repository"
	"report-web-server/internal/service"
	"report-web-server/migrations"
)

// @title Report-web-server
// @version 1.0
// @description REST API для отчётов с файлами и котировками золота

// @host localhost:8080
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	if err := runMigrations(db); err != nil {
		log.Fatalf("Ошибка применения миграций: %v", err)
	}

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	reportRepo := repository.NewReportRepository(db)
	goldPriceRepo := repository.NewGoldPriceRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.CacheSeconds)*time.Second)

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}

	mailService := service.NewMailService(&cfg.SMTP)
	reportService := service.NewReportService(reportRepo, cacheRepo, s3Service)
	downloadService := service.NewDownloadService(reportService, s3Service, &cfg.Download)
	goldPriceService := service.NewGoldPriceService(goldPriceRepo, db, mailService, &cfg.GoldAPI)

	reportHandler := handler.NewReportHandler(reportService, downloadService)
	goldPriceHandler := handler.NewGoldPriceHandler(goldPriceService)
	emailHandler := handler.NewEmailHandler(mailService)

	router.Use(config.DBMiddleware(db))
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupReportRoutes(router, reportHandler)
	setupGoldPriceRoutes(router, goldPriceHandler)
	setupEmailRoutes(router, emailHandler)

	scheduler := setupGoldPriceSchedule(ctx, cfg.GoldAPI.Schedule, goldPriceService)
	if scheduler != nil {
		defer scheduler.Stop()
	}

	runServer(ctx, srv)
}

func runMigrations(db *config.Database) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db.DB.DB, ".")
}

func setupReportRoutes(r chi.Router, h *handler.ReportHandler) {
	r.Route("/api/reports", func(r chi.Router) {
		r.Get("/", h.ListReports)
		r.Post("/", h.CreateReport)

		r.Route("/{reportId}", func(r chi.Router) {
			r.Get("/", h.GetReport)
			r.Delete("/", h.DeleteReport)
			r.Post("/upload", h.UploadReportFile)
			r.Get("/download/{fileType}", h.GetDownloadURL)
			r.Get("/file/{fileType}", h.DirectDownload)
		})
	})
}

func setupGoldPriceRoutes(r chi.Router, h *handler.GoldPriceHandler) {
	r.Route("/api/gold-prices", func(r chi.Router) {
		r.Get("/", h.ListGoldPrices)
		r.Get("/fetch", h.FetchGoldPrice)
	})
}

func setupEmailRoutes(r chi.Router, h *handler.EmailHandler) {
	r.Post("/api/email/test", h.SendTestEmail)
}

// setupGoldPriceSchedule : единственный периодический триггер — забор цены золота
func setupGoldPriceSchedule(ctx context.Context, schedule string, goldPriceService *service.GoldPriceService) *cron.Cron {
	if schedule == "" {
		return nil
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc(schedule, func() {
		fetchCtx, fetchCancel := context.WithTimeout(ctx, time.Minute)
		defer fetchCancel()

		if _, err := goldPriceService.FetchAndStore(fetchCtx); err != nil {
			log.Printf("ошибка планового забора цены золота: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("неверное расписание забора цены золота %q: %v", schedule, err)
	}

	scheduler.Start()
	log.Printf("плановый забор цены золота запущен: %s", schedule)
	return scheduler
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
