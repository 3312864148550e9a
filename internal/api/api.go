package api

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medhatjachour/employee-management/internal/dashboard"
	"github.com/medhatjachour/employee-management/internal/dto"
	"github.com/medhatjachour/employee-management/internal/repository/employee"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
)

// @title           Staff Dashboard API
// @version         1.0
// @description     Employee-records backend for the HR dashboard: listing with filtering and pagination, employee/manager mutations, and the analytics view.
//
// @BasePath  /
// @schemes   http
// @accept    json
// @produce   json

type EmployeeRepository interface {
	List(ctx context.Context, f employee.Filter) ([]dto.Employee, error)
	Count(ctx context.Context, f employee.Filter) (int64, error)
	GetByID(ctx context.Context, id int64) (*dto.Employee, error)
	Create(ctx context.Context, e dto.Employee) (*dto.Employee, error)
	Update(ctx context.Context, e dto.Employee) (*dto.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type ManagerRepository interface {
	List(ctx context.Context) ([]dto.Manager, error)
	Create(ctx context.Context, m dto.Manager) (*dto.Manager, error)
	ExistsByKeyOrEmail(ctx context.Context, managerID, email string) (bool, error)
}

type DashboardService interface {
	Aggregate(ctx context.Context, timeView string) (*dashboard.Response, error)
}

// Producer publishes staff change events for downstream consumers.
// Optional: a nil producer disables publishing.
type Producer interface {
	ProduceEmployee(ctx context.Context, kind string, e dto.Employee) error
	ProduceManager(ctx context.Context, kind string, m dto.Manager) error
}

type ServiceDeps struct {
	Port int

	EmployeeRepo EmployeeRepository
	ManagerRepo  ManagerRepository
	Dashboard    DashboardService
	Producer     Producer
}

type Service struct {
	r      *router.Router
	server *fasthttp.Server
	port   int

	employees EmployeeRepository
	managers  ManagerRepository
	dashboard DashboardService
	producer  Producer
}

func NewService(d ServiceDeps) *Service {
	rt := router.New()

	s := &Service{
		r:         rt,
		port:      d.Port,
		employees: d.EmployeeRepo,
		managers:  d.ManagerRepo,
		dashboard: d.Dashboard,
		producer:  d.Producer,
	}

	s.mountRoutes()

	s.server = &fasthttp.Server{
		Handler:            RecoveryMiddleware(LoggingMiddleware(CORS(s.r.Handler))),
		Name:               "staff-dashboard-api",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       15 * time.Second,
		MaxRequestBodySize: 2 << 20, // 2 MiB
	}

	return s
}

func (s *Service) Start(ctx context.Context) error {
	log.Info().Int("port", s.port).Msg("starting staff dashboard API")

	emergencyShutdown := make(chan error)
	go func() {
		emergencyShutdown <- s.server.ListenAndServe(fmt.Sprintf(":%d", s.port))
	}()

	select {
	case <-ctx.Done():
		return s.server.Shutdown()
	case e := <-emergencyShutdown:
		return e
	}
}

func (s *Service) mountRoutes() {
	// Employees
	s.r.GET("/employees", s.listEmployees)
	s.r.GET("/employees/{id}", s.getEmployee)
	s.r.POST("/employees", s.createEmployee)
	s.r.PUT("/employees/{id}", s.updateEmployee)
	s.r.DELETE("/employees/{id}", s.deleteEmployee)

	// Managers
	s.r.GET("/managers", s.listManagers)
	s.r.POST("/managers", s.createManager)

	// Analytics
	s.r.GET("/dashboard", s.getDashboard)

	// Health
	s.r.GET("/health", s.healthHandler)
}

// publishEmployee emits a change event best-effort: a broker failure is
// logged but never fails the originating request.
func (s *Service) publishEmployee(ctx context.Context, kind string, e dto.Employee) {
	if s.producer == nil {
		return
	}

	if err := s.producer.ProduceEmployee(ctx, kind, e); err != nil {
		log.Error().Err(err).Str("kind", kind).Int64("employee", e.ID).Msg("failed to publish staff event")
	}
}

func (s *Service) publishManager(ctx context.Context, kind string, m dto.Manager) {
	if s.producer == nil {
		return
	}

	if err := s.producer.ProduceManager(ctx, kind, m); err != nil {
		log.Error().Err(err).Str("kind", kind).Int64("manager", m.ID).Msg("failed to publish staff event")
	}
}
