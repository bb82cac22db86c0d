package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/opsdesk/opsdesk-backend-go/internal/handler/http/middleware"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	Env         string
	FrontendURL string
}

type Handlers struct {
	Auth        AuthHandler
	User        UserHandler
	Employee    EmployeeHandler
	Bank        BankHandler
	Master      MasterHandler
	Transaction TransactionHandler
	Expense     ExpenseHandler
	Payroll     PayrollHandler
	Dashboard   DashboardHandler
}

func NewRouter(cfg RouterConfig, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "opsdesk-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", h.Auth.LoginWithGoogle)
				r.Get("/callback/google", h.Auth.OAuthCallbackGoogle)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/auth/me", h.Auth.Me)

			// Admin only
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", h.User.List)
				r.Post("/", h.User.Create)
				r.Put("/{id}/role", h.User.UpdateRole)
				r.Put("/{id}/active", h.User.SetActive)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionViewEmployees))
					r.Get("/", h.Employee.List)
					r.Get("/{id}", h.Employee.GetByID)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionManageEmployees))
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Deactivate)
				})
			})

			r.Route("/accounts", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionViewAccounts))
					r.Get("/", h.Bank.ListAccounts)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionManageAccounts))
					r.Post("/", h.Bank.CreateAccount)
					r.Put("/{id}/active", h.Bank.SetAccountActive)
				})
			})

			r.Route("/cards", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionViewAccounts))
					r.Get("/", h.Bank.ListCards)
					r.Get("/{id}", h.Bank.GetCard)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionManageAccounts))
					r.Post("/", h.Bank.CreateCard)
					r.Put("/{id}/assign", h.Bank.AssignCard)
					r.Put("/{id}/unassign", h.Bank.UnassignCard)
					r.Post("/reset-daily-limits", h.Bank.ResetDailyLimits)
				})
			})

			r.Route("/sites", func(r chi.Router) {
				r.Get("/", h.Master.ListSites)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionManageAccounts))
					r.Post("/", h.Master.CreateSite)
					r.Put("/{id}/active", h.Master.SetSiteActive)
				})
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionViewTransactions))
					r.Get("/", h.Transaction.List)
					r.Get("/{id}", h.Transaction.GetByID)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionManageTransactions))
					r.Post("/", h.Transaction.Create)
					r.Put("/{id}/status", h.Transaction.UpdateStatus)
					r.Delete("/{id}", h.Transaction.Delete)
				})
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionManageExpenses))
				r.Get("/", h.Expense.ListByMonth)
				r.Get("/{id}", h.Expense.GetByID)
				r.Post("/", h.Expense.Create)
				r.Put("/{id}", h.Expense.Update)
				r.Delete("/{id}", h.Expense.Delete)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionViewPayroll))
					r.Get("/calculations", h.Payroll.ListCalculations)
					r.Get("/calculations/{id}", h.Payroll.GetCalculation)
					r.Get("/salaries", h.Payroll.ListSalaryRecords)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionRunPayroll))
					r.Post("/calculate", h.Payroll.Calculate)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionMarkSalariesPaid))
					r.Post("/salaries/mark-paid", h.Payroll.MarkPaid)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionViewDashboard))
					r.Get("/overview", h.Dashboard.MonthlyOverview)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionViewActivityLog))
					r.Get("/activity", h.Dashboard.ActivityLog)
				})
			})
		})
	})

	return r
}
