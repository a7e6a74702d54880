package router

import (
	"github.com/gin-gonic/gin"

	"github.com/lendledger/backend/internal/domain/identity"
	"github.com/lendledger/backend/internal/interfaces/http/handler"
	"github.com/lendledger/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the API handlers the router mounts
type Handlers struct {
	System    *handler.SystemHandler
	Profile   *handler.ProfileHandler
	Loan      *handler.LoanHandler
	Repayment *handler.RepaymentHandler
	Report    *handler.ReportHandler
	Audit     *handler.AuditHandler
}

// BuildRoutes assembles the domain route groups for the lending API.
// Authentication runs engine-wide; per-route role guards narrow access
// further.
func BuildRoutes(h Handlers) []RouteRegistrar {
	adminOnly := middleware.RequireRole(identity.RoleAdmin)
	adminOrCreditor := middleware.RequireRole(identity.RoleAdmin, identity.RoleCreditor)
	adminOrDebtor := middleware.RequireRole(identity.RoleAdmin, identity.RoleDebtor)

	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo)

	users := NewDomainGroup("users", "/users")
	users.POST("", adminOnly, h.Profile.Register)

	profile := NewDomainGroup("profile", "/profile")
	profile.GET("", h.Profile.GetProfile)
	profile.PUT("/contact", h.Profile.UpdateContact)

	directory := NewDomainGroup("directory", "")
	directory.GET("/creditors", adminOnly, h.Profile.ListCreditors)
	directory.GET("/debtors", adminOnly, h.Profile.ListDebtors)

	loans := NewDomainGroup("loans", "/loans")
	loans.POST("", adminOrCreditor, h.Loan.CreateLoan)
	loans.GET("", h.Loan.ListLoans)
	loans.GET("/:id", h.Loan.GetLoan)
	loans.GET("/:id/schedule", h.Loan.GetSchedule)
	loans.POST("/:id/decision", adminOrCreditor, h.Loan.DecideLoan)
	loans.POST("/:id/repayments", adminOrDebtor, h.Repayment.PostRepayment)

	reports := NewDomainGroup("reports", "/reports")
	reports.GET("/arrears", adminOrCreditor, h.Report.GetArrears)
	reports.GET("/payments", adminOrCreditor, h.Report.ListPayments)
	reports.GET("/payments/export", adminOrCreditor, h.Report.ExportPayments)
	reports.GET("/dashboard", h.Report.GetDashboard)

	audit := NewDomainGroup("audit", "/audit")
	audit.GET("", adminOnly, h.Audit.ListEntries)

	return []RouteRegistrar{system, users, profile, directory, loans, reports, audit}
}

// Mount registers all lending API routes plus the unauthenticated
// health endpoint on the engine.
func Mount(engine *gin.Engine, h Handlers, opts ...RouterOption) {
	engine.GET("/health", h.System.Health)

	r := NewRouter(engine, opts...)
	for _, registrar := range BuildRoutes(h) {
		r.Register(registrar)
	}
	r.Setup()
}
