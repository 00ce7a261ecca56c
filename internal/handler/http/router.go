package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/Prateek11234/hrms/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// RouterOptions carries the cross-cutting settings of the router.
type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(
	opts RouterOptions,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]bool{"ok": true})
	})

	r.Get("/dashboard", dashboardHandler.GetDashboard)

	r.Route("/employees", func(r chi.Router) {
		r.Get("/", employeeHandler.ListEmployees)
		r.Post("/", employeeHandler.CreateEmployee)

		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", employeeHandler.DeleteEmployee)

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.ListAttendance)
				r.Post("/", attendanceHandler.MarkAttendance)
				r.Get("/export", attendanceHandler.ExportAttendance)
			})
		})
	})

	return r
}

// NewLogger builds the JSON slog logger used for request logging.
func NewLogger(app, version, env string, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", app),
		slog.String("version", version),
		slog.String("env", env),
	)
}
