package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"

	httpadp "sacco-backend/internal/adapter/http"
	"sacco-backend/internal/adapter/middleware"
	"sacco-backend/internal/adapter/repository/mysql"
	"sacco-backend/internal/config"
	domainLoan "sacco-backend/internal/domain/loan"
	"sacco-backend/internal/infrastructure/cache"
	"sacco-backend/internal/infrastructure/db"
	ucApproval "sacco-backend/internal/usecase/approval"
	"sacco-backend/internal/usecase/eligibility"
	ucLoan "sacco-backend/internal/usecase/loan"
	ucRepayment "sacco-backend/internal/usecase/repayment"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	loanRepo := mysql.NewLoanRepository(gdb)
	approvalRepo := mysql.NewApprovalRepository(gdb)
	guarantorRepo := mysql.NewGuarantorRepository(gdb)
	savingsRepo := mysql.NewSavingsRepository(gdb)
	unit := mysql.NewGormUoW(gdb)

	assessor := eligibility.NewAssessor(decimal.NewFromInt(int64(cfg.EligibilityMultiple)))
	loanUC := ucLoan.NewUsecase(loanRepo, guarantorRepo, savingsRepo, assessor, unit, domainLoan.DefaultPolicyTable())
	approvalUC := ucApproval.NewUsecase(loanRepo, approvalRepo, unit)
	repaymentUC := ucRepayment.NewUsecase(unit, cfg.RequireGuarantorAcceptance)

	h := httpadp.NewHandler()
	loanH := httpadp.NewLoanHandler(loanUC)
	approvalH := httpadp.NewApprovalHandler(approvalUC)
	repaymentH := httpadp.NewRepaymentHandler(repaymentUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)

	e.POST("/loans", loanH.ApplyLoan, idemp)
	e.GET("/loans", loanH.ListLoans)
	e.GET("/loans/stats", loanH.Stats)
	e.GET("/loans/:loan_id", loanH.GetLoan)
	e.GET("/loans/:loan_id/eligibility", loanH.Eligibility)
	e.GET("/loans/:loan_id/guarantors", loanH.ListGuarantors)
	e.GET("/members/:member_id/loans", loanH.ListMemberLoans)
	e.POST("/guarantors/:guarantor_id/response", loanH.RespondGuarantor, idemp)

	e.POST("/loans/:loan_id/decision", approvalH.Decide, idemp)
	e.GET("/loans/:loan_id/approvals", approvalH.History)

	e.POST("/loans/:loan_id/disburse", repaymentH.Disburse, idemp)
	e.POST("/loans/:loan_id/repayments", repaymentH.PostRepayment, idemp)
	e.POST("/loans/:loan_id/default", repaymentH.MarkDefaulted, idemp)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
