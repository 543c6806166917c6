package routes

import (
	"fmt"

	"customer-intake-portal/internal/api/handlers"
	"customer-intake-portal/internal/api/middleware"
	"customer-intake-portal/internal/config"
	"customer-intake-portal/internal/metrics"
	"customer-intake-portal/internal/repository"
	"customer-intake-portal/internal/service"
	"customer-intake-portal/web"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Notification backends reported by the health endpoint
const (
	notifierSMTP = "smtp"
	notifierLog  = "log"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	notifier, notifierName, err := newNotifier(cfg)
	if err != nil {
		return nil, err
	}
	return setupRouter(db, cfg, notifier, notifierName)
}

func setupRouter(db *gorm.DB, cfg *config.Config, notifier service.Notifier, notifierName string) (*gin.Engine, error) {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(metrics.GinMiddleware())

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)

	// Initialize collaborators
	employees := newEmployeeDirectory(cfg, employeeRepo)

	// Initialize services
	intakeService, err := service.NewIntakeService(customerRepo, inquiryRepo, employees, notifier, validator, service.IntakeConfig{
		AdminName:      cfg.IntakeAdminName,
		AdminEmail:     cfg.IntakeAdminEmail,
		SenderIdentity: cfg.IntakeSenderIdentity,
	})
	if err != nil {
		return nil, fmt.Errorf("configure intake service: %w", err)
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, notifierName)
	intakeHandler := handlers.NewIntakeHandler(intakeService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public intake form
	router.GET("/intake", intakeHandler.ShowForm)
	router.POST("/intake", intakeHandler.Submit)

	return router, nil
}

func newEmployeeDirectory(cfg *config.Config, repo *repository.EmployeeRepository) service.EmployeeDirectory {
	if cfg.EmployeeDirectory == config.EmployeeDirectoryLDAP {
		logrus.WithField("host", cfg.LDAPHost).Info("Resolving sales representatives through LDAP")
		return service.NewLDAPEmployeeDirectory(cfg, repo)
	}
	return service.NewRepositoryEmployeeDirectory(repo)
}

func newNotifier(cfg *config.Config) (service.Notifier, string, error) {
	if !cfg.SMTPEnabled {
		logrus.Warn("SMTP is disabled, intake notifications will only be logged")
		return service.NewLogNotifier(), notifierLog, nil
	}
	notifier, err := service.NewSMTPNotifier(cfg)
	if err != nil {
		return nil, "", fmt.Errorf("configure smtp notifier: %w", err)
	}
	return notifier, notifierSMTP, nil
}
