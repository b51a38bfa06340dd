package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pet-care-portal/docs"

	objmem "pet-care-portal/internal/adapters/objectstore/memory"
	mem "pet-care-portal/internal/adapters/storage/memory"
	pg "pet-care-portal/internal/adapters/storage/postgres"
	"pet-care-portal/internal/domain/animals"
	"pet-care-portal/internal/domain/calendar"
	"pet-care-portal/internal/domain/clients"
	"pet-care-portal/internal/domain/documents"
	"pet-care-portal/internal/domain/invoices"
	"pet-care-portal/internal/domain/modrequests"
	"pet-care-portal/internal/domain/questionnaires"
	"pet-care-portal/internal/domain/reports"
	"pet-care-portal/internal/domain/reviews"
	"pet-care-portal/internal/domain/sessions"
	"pet-care-portal/internal/middleware"
	"pet-care-portal/internal/platform/logger"
	"pet-care-portal/internal/platform/metrics"
	"pet-care-portal/internal/ports/auth"
	"pet-care-portal/internal/ports/storage"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Allow-list de /admin. Vacía = nadie es admin.
	Admins middleware.AdminList

	// Opcional: si es nil se usa el store en memoria.
	ObjectStore storage.ObjectStore

	// Opcional: sin calendar la ruta de agendas no se monta.
	Calendar *calendar.Service

	Logger logger.Logger
}

type repos struct {
	clients        clients.Repository
	animals        animals.Repository
	modRequests    modrequests.Repository
	sessions       sessions.Repository
	invoices       invoices.Repository
	questionnaires questionnaires.Repository
	reviews        reviews.Repository
	reports        reports.Repository
	documents      documents.Repository
}

func newRepos(db *sql.DB) repos {
	if db != nil {
		return repos{
			clients:        pg.NewClientsRepo(db),
			animals:        pg.NewAnimalsRepo(db),
			modRequests:    pg.NewModificationRequestsRepo(db),
			sessions:       pg.NewSessionsRepo(db),
			invoices:       pg.NewInvoicesRepo(db),
			questionnaires: pg.NewQuestionnairesRepo(db),
			reviews:        pg.NewReviewsRepo(db),
			reports:        pg.NewReportsRepo(db),
			documents:      pg.NewDocumentsRepo(db),
		}
	}
	return repos{
		clients:        mem.NewClientRepo(),
		animals:        mem.NewAnimalRepo(),
		modRequests:    mem.NewModificationRequestRepo(),
		sessions:       mem.NewSessionRepo(),
		invoices:       mem.NewInvoiceRepo(),
		questionnaires: mem.NewQuestionnaireRepo(),
		reviews:        mem.NewReviewRepo(),
		reports:        mem.NewReportRepo(),
		documents:      mem.NewDocumentRepo(),
	}
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	store := opts.ObjectStore
	if store == nil {
		store = objmem.New("documents")
	}
	admins := opts.Admins
	if admins == nil {
		admins = middleware.NewAdminList()
	}
	httpMetrics := metrics.New()

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLogger(log))
	r.Use(httpMetrics.Middleware)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	rp := newRepos(opts.DB)

	// Services por módulo
	clientsSvc := clients.NewService(rp.clients)
	animalsSvc := animals.NewService(rp.animals)
	modRequestsSvc := modrequests.NewService(rp.modRequests, animalsSvc, store)
	sessionsSvc := sessions.NewService(rp.sessions, animalsSvc)
	invoicesSvc := invoices.NewService(rp.invoices, sessionsSvc)
	questionnairesSvc := questionnaires.NewService(rp.questionnaires, sessionsSvc)
	reviewsSvc := reviews.NewService(rp.reviews, sessionsSvc)
	reportsSvc := reports.NewService(rp.reports, sessionsSvc)
	documentsSvc := documents.NewService(rp.documents, animalsSvc, store)

	// Rutas del portal de clientes
	clients.RegisterRoutes(r, clientsSvc)
	animals.RegisterRoutes(r, animalsSvc, admins)
	modrequests.RegisterRoutes(r, modRequestsSvc)
	sessions.RegisterRoutes(r, sessionsSvc, admins)
	invoices.RegisterRoutes(r, invoicesSvc)
	questionnaires.RegisterRoutes(r, questionnairesSvc, admins)
	reviews.RegisterRoutes(r, reviewsSvc)
	reports.RegisterRoutes(r, reportsSvc, admins)
	documents.RegisterRoutes(r, documentsSvc, admins)

	// Agendas: admin, pero responde envelope en vez de redirigir.
	if opts.Calendar != nil {
		calendar.RegisterRoutes(r, opts.Calendar, admins, log)
	}

	// Panel admin: sin match exacto en la allow-list redirige a "/".
	r.Route("/admin", func(ar chi.Router) {
		ar.Use(middleware.RequireAdmin(admins))

		clients.RegisterAdminRoutes(ar, clientsSvc)
		animals.RegisterAdminRoutes(ar, animalsSvc)
		modrequests.RegisterAdminRoutes(ar, modRequestsSvc)
		sessions.RegisterAdminRoutes(ar, sessionsSvc)
		invoices.RegisterAdminRoutes(ar, invoicesSvc)
		reviews.RegisterAdminRoutes(ar, reviewsSvc)
		reports.RegisterAdminRoutes(ar, reportsSvc)
		documents.RegisterAdminRoutes(ar, documentsSvc)
	})

	return r
}
