package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/nats-io/nats.go"

	"github.com/hadirly/attendance-backend-go/internal/config"
	appHTTP "github.com/hadirly/attendance-backend-go/internal/handler/http"
	"github.com/hadirly/attendance-backend-go/internal/pkg/database"
	"github.com/hadirly/attendance-backend-go/internal/pkg/geoip"
	"github.com/hadirly/attendance-backend-go/internal/pkg/jwt"
	"github.com/hadirly/attendance-backend-go/internal/pkg/notifier"
	"github.com/hadirly/attendance-backend-go/internal/pkg/sse"
	"github.com/hadirly/attendance-backend-go/internal/pkg/storage"
	"github.com/hadirly/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hadirly/attendance-backend-go/internal/service/attendance"
	configService "github.com/hadirly/attendance-backend-go/internal/service/attendanceconfig"
	authService "github.com/hadirly/attendance-backend-go/internal/service/auth"
	"github.com/hadirly/attendance-backend-go/internal/service/file"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "attendance-backend"),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	attendanceConfigRepo := postgresql.NewAttendanceConfigRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	hub := sse.NewHub()

	var eventNotifier notifier.Notifier
	switch cfg.Notifier.Driver {
	case "nats":
		conn, err := nats.Connect(cfg.Notifier.NATSURL)
		if err != nil {
			log.Fatal("Failed to connect to NATS:", err)
		}
		defer conn.Close()
		eventNotifier = notifier.NewNATSNotifier(conn, cfg.Notifier.NATSSubjectPrefix, logger)
	default:
		eventNotifier = notifier.NewSSENotifier(hub)
	}

	var geoipClient *geoip.Client
	if cfg.GeoIP.BaseURL != "" {
		geoipClient = geoip.NewClient(cfg.GeoIP.BaseURL)
	}

	fileService := file.NewFileService(fileStorage)
	authSvc := authService.NewAuthService(userRepo, jwtService, logger)
	configSvc := configService.NewConfigService(attendanceConfigRepo, logger)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		attendanceRepo,
		attendanceConfigRepo,
		userRepo,
		fileService,
		eventNotifier,
		geoipClient,
		cfg.Attendance.DefaultStartHour,
		cfg.Attendance.DefaultEndHour,
		logger,
	)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	configHandler := appHTTP.NewAttendanceConfigHandler(configSvc)
	eventsHandler := appHTTP.NewEventsHandler(jwtService, hub)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.AllowedOrigins,
			UploadsDir:     cfg.Storage.BasePath,
		},
		jwtService,
		authHandler,
		attendanceHandler,
		configHandler,
		eventsHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
