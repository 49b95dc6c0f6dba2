package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "dailypawie/internal/adapters/storage/memory"
	pg "dailypawie/internal/adapters/storage/postgres"
	"dailypawie/internal/domain/media"
	"dailypawie/internal/domain/pets"
	"dailypawie/internal/domain/users"
	"dailypawie/internal/middleware"
	"dailypawie/internal/ports/auth"

	_ "dailypawie/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	var (
		petRepo   pets.Repository
		userRepo  users.Repository
		mediaRepo media.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		petRepo = pg.NewPetsRepo(db)
		userRepo = pg.NewUsersRepo(db)
		mediaRepo = pg.NewMediaRepo(db)
	} else {
		petRepo = mem.NewPetRepo()
		userRepo = mem.NewUserRepo()
		mediaRepo = mem.NewMediaRepo()
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	usersSvc := users.NewService(userRepo, petsSvc)
	mediaSvc := media.NewService(mediaRepo)

	// Toda la API cuelga de /api
	r.Route("/api", func(api chi.Router) {
		pets.RegisterRoutes(api, petsSvc)
		users.RegisterRoutes(api, usersSvc)
		media.RegisterRoutes(api, mediaSvc)
	})

	return r
}
