package api

import (
	"log/slog"

	"gorm.io/gorm"

	adoptionmemory "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/adapters/memory"
	adoptionobs "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/adapters/observability"
	adoptionpostgres "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/adapters/persistence/postgres"
	adoptionapp "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/application"
	adoptionports "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/ports"
	petmemory "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/adapters/memory"
	petobs "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/adapters/observability"
	petpostgres "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/adapters/persistence/postgres"
	petapp "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/application"
	petports "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/ports"
	sheltermemory "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/adapters/memory"
	shelterobs "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/adapters/observability"
	shelterpostgres "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/adapters/persistence/postgres"
	shelterapp "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/application"
	shelterports "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/ports"
	usermemory "github.com/Apurer/go-gin-shelter-server/internal/domains/users/adapters/memory"
	userobs "github.com/Apurer/go-gin-shelter-server/internal/domains/users/adapters/observability"
	userpostgres "github.com/Apurer/go-gin-shelter-server/internal/domains/users/adapters/persistence/postgres"
	userapp "github.com/Apurer/go-gin-shelter-server/internal/domains/users/application"
	userports "github.com/Apurer/go-gin-shelter-server/internal/domains/users/ports"
	platformobservability "github.com/Apurer/go-gin-shelter-server/internal/platform/observability"
)

// Services are the instrumented application services shared by the API and the worker.
type Services struct {
	Shelters  shelterports.Service
	Pets      petports.Service
	Users     userports.Service
	Adoptions adoptionports.Service
}

// NewServices wires every bounded context over postgres when db is set, memory otherwise.
// A nil dispatcher leaves the editor on stored descriptions.
func NewServices(cfg Config, instruments *platformobservability.Instruments, db *gorm.DB, dispatcher petports.Dispatcher) *Services {
	logger := slog.Default()
	if instruments != nil && instruments.Logger != nil {
		logger = instruments.Logger
	}
	repos := buildRepositories(db)
	if dispatcher == nil {
		dispatcher = petports.NoopDispatcher{}
	}

	shelters := shelterobs.New(
		shelterapp.NewService(repos.shelters),
		shelterobs.WithLogger(logger),
		shelterobs.WithTracer(instruments.Tracer("internal.shelters.application")),
		shelterobs.WithMeter(instruments.Meter("internal.shelters.application")),
	)
	pets := petobs.New(
		petapp.NewService(repos.pets, repos.shelters,
			petapp.WithDispatcher(dispatcher),
			petapp.WithEventPublisher(petobs.NewEventLogger(logger)),
			petapp.WithLogger(logger),
		),
		petobs.WithLogger(logger),
		petobs.WithTracer(instruments.Tracer("internal.pets.application")),
		petobs.WithMeter(instruments.Meter("internal.pets.application")),
	)
	users := userobs.New(
		userapp.NewService(repos.users, repos.sessions, shelters, userapp.WithSessionTTL(cfg.SessionTTL)),
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	)
	adoptions := adoptionobs.New(
		adoptionapp.NewService(repos.adoptions, pets, shelters),
		adoptionobs.WithLogger(logger),
		adoptionobs.WithTracer(instruments.Tracer("internal.adoptions.application")),
		adoptionobs.WithMeter(instruments.Meter("internal.adoptions.application")),
	)
	return &Services{Shelters: shelters, Pets: pets, Users: users, Adoptions: adoptions}
}

type repositories struct {
	shelters  shelterports.Repository
	pets      petports.Repository
	users     userports.Repository
	sessions  userports.SessionStore
	adoptions adoptionports.Repository
}

// buildRepositories picks postgres adapters when db is set and memory adapters otherwise.
func buildRepositories(db *gorm.DB) repositories {
	if db != nil {
		return repositories{
			shelters:  shelterpostgres.NewRepository(db),
			pets:      petpostgres.NewRepository(db),
			users:     userpostgres.NewRepository(db),
			sessions:  userpostgres.NewSessionStore(db),
			adoptions: adoptionpostgres.NewRepository(db),
		}
	}
	shelters := sheltermemory.NewRepository()
	pets := petmemory.NewRepository()
	return repositories{
		shelters:  shelters,
		pets:      pets,
		users:     usermemory.NewRepository(),
		sessions:  usermemory.NewSessionStore(),
		adoptions: adoptionmemory.NewRepository(pets, shelters),
	}
}

