package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"carrierlink/internal/adapters/in/http"
	"carrierlink/internal/adapters/out/credentials"
	"carrierlink/internal/adapters/out/gormstore"
	"carrierlink/internal/adapters/out/memory"
	"carrierlink/internal/core/application/usecases/commands"
	"carrierlink/internal/core/application/usecases/queries"
	"carrierlink/internal/core/domain/services"
	"carrierlink/internal/core/ports"
	"carrierlink/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	gormDB     *gorm.DB
	memStore   *memory.Store
	uowFactory ports.UnitOfWorkFactory
	repos      ports.Repositories

	hasher    credentials.BcryptHasher
	lifecycle services.Lifecycle
	tokens    *http.TokenIssuer
}

// NewCompositionRoot opens the configured store and builds the shared
// collaborators. Close releases the store.
func NewCompositionRoot(cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	policy, err := services.ParseAcceptancePolicy(cfg.AcceptRoles)
	if err != nil {
		return nil, fmt.Errorf("ACCEPT_ROLES: %w", err)
	}

	tokens, err := http.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		cfg:       cfg,
		logger:    logger,
		hasher:    credentials.NewBcryptHasher(cfg.BcryptCost),
		lifecycle: services.NewLifecycle(policy),
		tokens:    tokens,
	}

	if err = root.openStore(); err != nil {
		return nil, err
	}
	return root, nil
}

func (c *CompositionRoot) openStore() error {
	var dsn string
	switch c.cfg.DBDriver {
	case DriverMemory:
		c.memStore = memory.NewStore()
		c.uowFactory = memory.NewUnitOfWorkFactory(c.memStore)
		c.repos = c.memStore.Repositories()
		return nil
	case DriverPostgres:
		dsn = gormstore.PostgresDSN(c.cfg.DBHost, c.cfg.DBPort, c.cfg.DBUser, c.cfg.DBPassword, c.cfg.DBName, c.cfg.DBSslMode)
	case DriverSQLite:
		dsn = c.cfg.SQLitePath
	default:
		return fmt.Errorf("unsupported database driver %q", c.cfg.DBDriver)
	}

	db, err := gormstore.Open(gormstore.Config{Driver: c.cfg.DBDriver, DSN: dsn, Logger: c.logger})
	if err != nil {
		return err
	}
	if err = gormstore.Migrate(db); err != nil {
		return errors.Join(fmt.Errorf("migrate: %w", err), gormstore.Close(db))
	}

	c.gormDB = db
	c.uowFactory = gormstore.NewGormUnitOfWorkFactory(db)
	c.repos = gormstore.NewRepositories(db)
	return nil
}

// Close releases the store.
func (c *CompositionRoot) Close() error {
	if c.gormDB != nil {
		return gormstore.Close(c.gormDB)
	}
	if c.memStore != nil {
		return c.memStore.Close()
	}
	return nil
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterUserCommandHandler(f, c.hasher)
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionDeliveryStatusCommandHandler() commands.TransitionDeliveryStatusCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionDeliveryStatusCommandHandler(f, c.lifecycle)
}

func (c *CompositionRoot) CreateSubmitReviewCommandHandler() commands.SubmitReviewCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitReviewCommandHandler(f)
}

func (c *CompositionRoot) CreateAuthenticateUserQueryHandler() queries.AuthenticateUserQueryHandler {
	return queries.NewAuthenticateUserQueryHandler(c.repos, c.hasher)
}

func (c *CompositionRoot) CreateListDeliveriesQueryHandler() queries.ListDeliveriesQueryHandler {
	return queries.NewListDeliveriesQueryHandler(c.repos)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.repos)
}

func (c *CompositionRoot) CreateListPartyDeliveriesQueryHandler() queries.ListPartyDeliveriesQueryHandler {
	return queries.NewListPartyDeliveriesQueryHandler(c.repos)
}

func (c *CompositionRoot) CreateGetUserProfileQueryHandler() queries.GetUserProfileQueryHandler {
	return queries.NewGetUserProfileQueryHandler(c.repos)
}

func (c *CompositionRoot) CreateListReviewsForUserQueryHandler() queries.ListReviewsForUserQueryHandler {
	return queries.NewListReviewsForUserQueryHandler(c.repos)
}

func (c *CompositionRoot) CreateGetDeliveryStatsQueryHandler() queries.GetDeliveryStatsQueryHandler {
	return queries.NewGetDeliveryStatsQueryHandler(c.repos)
}

// CreateHTTPServer wires every use case into the request boundary.
func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(http.Handlers{
		RegisterUser:        c.CreateRegisterUserCommandHandler(),
		CreateDelivery:      c.CreateCreateDeliveryCommandHandler(),
		TransitionStatus:    c.CreateTransitionDeliveryStatusCommandHandler(),
		SubmitReview:        c.CreateSubmitReviewCommandHandler(),
		Authenticate:        c.CreateAuthenticateUserQueryHandler(),
		ListDeliveries:      c.CreateListDeliveriesQueryHandler(),
		GetDelivery:         c.CreateGetDeliveryQueryHandler(),
		ListPartyDeliveries: c.CreateListPartyDeliveriesQueryHandler(),
		GetUserProfile:      c.CreateGetUserProfileQueryHandler(),
		ListReviewsForUser:  c.CreateListReviewsForUserQueryHandler(),
		GetDeliveryStats:    c.CreateGetDeliveryStatsQueryHandler(),
	}, c.tokens)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	return http.NewRouter(c.CreateHTTPServer(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewDeliveryStatsJob(c.CreateGetDeliveryStatsQueryHandler(), c.cfg.StatsCron, c.logger),
	)
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
