package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/opsdesk/opsdesk-backend-go/internal/config"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/payroll"
	appHTTP "github.com/opsdesk/opsdesk-backend-go/internal/handler/http"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/database"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/jwt"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/oauth"
	"github.com/opsdesk/opsdesk-backend-go/internal/repository/postgresql"
	activityLogService "github.com/opsdesk/opsdesk-backend-go/internal/service/activitylog"
	serviceAuth "github.com/opsdesk/opsdesk-backend-go/internal/service/auth"
	bankService "github.com/opsdesk/opsdesk-backend-go/internal/service/bank"
	dashboardService "github.com/opsdesk/opsdesk-backend-go/internal/service/dashboard"
	employeeService "github.com/opsdesk/opsdesk-backend-go/internal/service/employee"
	expenseService "github.com/opsdesk/opsdesk-backend-go/internal/service/expense"
	"github.com/opsdesk/opsdesk-backend-go/internal/service/master"
	payrollService "github.com/opsdesk/opsdesk-backend-go/internal/service/payroll"
	transactionService "github.com/opsdesk/opsdesk-backend-go/internal/service/transaction"
	userService "github.com/opsdesk/opsdesk-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	bankRepo := postgresql.NewBankRepository(db)
	siteRepo := postgresql.NewSiteRepository(db)
	transactionRepo := postgresql.NewTransactionRepository(db)
	expenseRepo := postgresql.NewExpenseRepository(db)
	payrollStore := postgresql.NewPayrollStore(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	activityLogRepo := postgresql.NewActivityLogRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	rolePolicy := payroll.DefaultRolePolicy()

	authSvc := serviceAuth.NewAuthService(userRepo, jwtService, activityLogRepo)
	userSvc := userService.NewUserService(userRepo, activityLogRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, activityLogRepo)
	bankSvc := bankService.NewBankService(bankRepo, employeeRepo, activityLogRepo)
	siteSvc := master.NewSiteService(siteRepo, activityLogRepo)
	transactionSvc := transactionService.NewTransactionService(transactionRepo, employeeRepo, bankRepo, activityLogRepo)
	expenseSvc := expenseService.NewExpenseService(expenseRepo, activityLogRepo)
	payrollSvc := payrollService.NewPayrollService(
		transactionRepo,
		expenseRepo,
		employeeRepo,
		payrollStore,
		cfg.Payroll.SalaryFundRatio,
		rolePolicy,
		activityLogRepo,
	)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, rolePolicy)
	activityLogSvc := activityLogService.NewActivityLogService(activityLogRepo)

	handlers := appHTTP.Handlers{
		Auth:        appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.GoogleEnabled()),
		User:        appHTTP.NewUserHandler(userSvc),
		Employee:    appHTTP.NewEmployeeHandler(employeeSvc),
		Bank:        appHTTP.NewBankHandler(bankSvc),
		Master:      appHTTP.NewMasterHandler(siteSvc),
		Transaction: appHTTP.NewTransactionHandler(transactionSvc),
		Expense:     appHTTP.NewExpenseHandler(expenseSvc),
		Payroll:     appHTTP.NewPayrollHandler(payrollSvc),
		Dashboard:   appHTTP.NewDashboardHandler(dashboardSvc, activityLogSvc),
	}

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Env:         cfg.App.Env,
		FrontendURL: cfg.App.FrontendURL,
	}, jwtService, handlers)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
