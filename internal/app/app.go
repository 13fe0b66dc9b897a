package app

import (
	"time"

	"certflow-backend/internal/assignments"
	"certflow-backend/internal/auditors"
	"certflow-backend/internal/audittypes"
	"certflow-backend/internal/certifications"
	"certflow-backend/internal/config"
	"certflow-backend/internal/dashboard"
	"certflow-backend/internal/database"
	"certflow-backend/internal/health"
	"certflow-backend/internal/inspections"
	"certflow-backend/internal/middleware"
	"certflow-backend/internal/operators"
	"certflow-backend/internal/periodevents"
	"certflow-backend/internal/pkg/clock"
	"certflow-backend/internal/policy"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all global middleware and route registration.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	fiberApp := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	fiberApp.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix:  cfg.FrontendURLEndsWith,
		DevPassword:    cfg.DevPassword,
		AllowLocalhost: cfg.Env != "production",
	}))
	fiberApp.Use(middleware.Tracing())
	fiberApp.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opts)
	}

	healthHandlers := &health.Handlers{Rdb: rdb}
	if db != nil {
		healthHandlers.DB = &gormDBPinger{db: db}
	}
	fiberApp.Get("/health/json", healthHandlers.JSON)

	if db != nil {
		RegisterRoutes(fiberApp, db, rdb, time.Duration(cfg.DashboardCacheTTL)*time.Second)
	}

	return fiberApp, db, rdb, nil
}

// RegisterRoutes wires every module's services and handlers onto the app.
// Split from CreateApp so tests can mount routes on an in-memory database.
func RegisterRoutes(fiberApp *fiber.App, db *gorm.DB, rdb *redis.Client, cacheTTL time.Duration) {
	validate := validator.New()
	sysClock := clock.System{}
	policyProvider := &policy.Provider{DB: db}
	eventRecorder := periodevents.Recorder{}

	// Operators
	operatorService := &operators.Service{DB: db}
	operatorHandlers := &operators.Handlers{Service: operatorService, Validate: validate}
	operatorGroup := fiberApp.Group("/api/v1/operators")
	operatorGroup.Post("/create-operator", operatorHandlers.CreateOperator)
	operatorGroup.Put("/update-operator/:operator_id", operatorHandlers.UpdateOperator)
	operatorGroup.Get("/get-all-operators", operatorHandlers.GetAllOperators)
	operatorGroup.Get("/get-operator/:operator_id", operatorHandlers.GetOperator)

	// Certifications
	certificationService := &certifications.Service{DB: db}
	certificationHandlers := &certifications.Handlers{Service: certificationService, Validate: validate}
	certificationGroup := fiberApp.Group("/api/v1/certifications")
	certificationGroup.Post("/create-certification", certificationHandlers.CreateCertification)
	certificationGroup.Put("/update-certification/:certification_id", certificationHandlers.UpdateCertification)
	certificationGroup.Get("/get-all-certifications", certificationHandlers.GetAllCertifications)
	certificationGroup.Get("/get-certification/:certification_id", certificationHandlers.GetCertification)

	// Auditors
	auditorService := &auditors.Service{DB: db}
	auditorHandlers := &auditors.Handlers{Service: auditorService, Validate: validate}
	auditorGroup := fiberApp.Group("/api/v1/auditors")
	auditorGroup.Post("/create-auditor", auditorHandlers.CreateAuditor)
	auditorGroup.Put("/update-auditor/:auditor_id", auditorHandlers.UpdateAuditor)
	auditorGroup.Get("/get-all-auditors", auditorHandlers.GetAllAuditors)
	auditorGroup.Get("/get-auditor/:auditor_id", auditorHandlers.GetAuditor)

	// Product audit types
	auditTypeService := &audittypes.Service{DB: db}
	auditTypeHandlers := &audittypes.Handlers{Service: auditTypeService, Validate: validate}
	auditTypeGroup := fiberApp.Group("/api/v1/audit-types")
	auditTypeGroup.Post("/create-audit-type", auditTypeHandlers.CreateAuditType)
	auditTypeGroup.Get("/get-all-audit-types", auditTypeHandlers.GetAllAuditTypes)
	auditTypeGroup.Get("/by-certification/:certification_id", auditTypeHandlers.GetByCertification)
	auditTypeGroup.Get("/get-audit-type/:audit_type_id", auditTypeHandlers.GetAuditType)

	// Inspection policies
	policyService := &policy.Service{DB: db}
	policyHandlers := &policy.Handlers{Service: policyService}
	policyGroup := fiberApp.Group("/api/v1/policies")
	policyGroup.Post("/create-policy", policyHandlers.CreatePolicy)
	policyGroup.Get("/get-active-policy", policyHandlers.GetActivePolicy)
	policyGroup.Get("/get-all-policies", policyHandlers.GetAllPolicies)

	// Assignments
	assignmentService := &assignments.Service{DB: db, Policy: policyProvider, Events: eventRecorder}
	assignmentHandlers := &assignments.Handlers{Service: assignmentService, Validate: validate}
	assignmentGroup := fiberApp.Group("/api/v1/assignments")
	assignmentGroup.Post("/create-assignment", assignmentHandlers.CreateAssignment)
	assignmentGroup.Get("/get-all-assignments", assignmentHandlers.GetAllAssignments)
	assignmentGroup.Get("/get-assignment/:assignment_id", assignmentHandlers.GetAssignment)
	assignmentGroup.Get("/get-active-period/:assignment_id", assignmentHandlers.GetActivePeriod)

	// Inspections
	inspectionService := &inspections.Service{DB: db, Policy: policyProvider, Clock: sysClock, Events: eventRecorder}
	inspectionHandlers := &inspections.Handlers{Service: inspectionService, Validate: validate}
	inspectionGroup := fiberApp.Group("/api/v1/inspections")
	inspectionGroup.Post("/create-inspection", inspectionHandlers.CreateInspection)
	inspectionGroup.Get("/get-all-inspections", inspectionHandlers.GetAllInspections)
	inspectionGroup.Get("/get-inspection/:inspection_id", inspectionHandlers.GetInspection)
	inspectionGroup.Get("/lookup/:assignment_id", inspectionHandlers.Lookup)
	inspectionGroup.Post("/sweep-expired", inspectionHandlers.SweepExpired)

	// Dashboard
	dashboardService := &dashboard.Service{DB: db, Sweeper: inspectionService, Cache: rdb, CacheTTL: cacheTTL}
	dashboardHandlers := &dashboard.Handlers{Service: dashboardService, Clock: sysClock}
	dashboardGroup := fiberApp.Group("/api/v1/dashboard")
	dashboardGroup.Get("/triage", dashboardHandlers.Triage)
	dashboardGroup.Get("/open-periods", dashboardHandlers.OpenPeriods)

	// Period events
	eventService := &periodevents.Service{DB: db}
	eventHandlers := &periodevents.Handlers{Service: eventService}
	eventGroup := fiberApp.Group("/api/v1/period-events")
	eventGroup.Get("/by-assignment/:assignment_id", eventHandlers.GetByAssignment)
}
