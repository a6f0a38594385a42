package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "sacco-backend/internal/domain/loan"
	"sacco-backend/internal/domain/uow"
	"sacco-backend/internal/testutil/approvalmock"
	"sacco-backend/internal/testutil/guarantormock"
	"sacco-backend/internal/testutil/loanmock"
	"sacco-backend/internal/testutil/savingsmock"
	"sacco-backend/internal/testutil/uowmock"
	"sacco-backend/internal/usecase/eligibility"
	uc "sacco-backend/internal/usecase/loan"
)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func newLoanUsecase(repo *loanmock.Repo, sav *savingsmock.Reader) *uc.Usecase {
	if sav == nil {
		sav = &savingsmock.Reader{}
	}
	unit := uowmock.NewPassthrough(uow.Repos{
		Loans:        repo,
		Approvals:    &approvalmock.Repo{},
		Guarantors:   &guarantormock.Repo{},
		Transactions: &savingsmock.Recorder{},
	})
	return uc.NewUsecase(repo, &guarantormock.Repo{}, sav, eligibility.NewAssessor(eligibility.DefaultMultiple), unit, domain.DefaultPolicyTable())
}

func validApplyBody() map[string]any {
	return map[string]any{
		"member_id":        strings.Repeat("b", 32),
		"loan_type":        "short_term",
		"principal_amount": 50000,
		"term_months":      12,
		"purpose":          "school fees for second term",
	}
}

// -------- tests --------

func TestApplyLoan_Success(t *testing.T) {
	e := newEchoWithValidator()

	repo := &loanmock.Repo{
		// No pending loan found
		GetPendingLoanByMemberIDFn: func(ctx context.Context, memberID string) (*domain.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, l *domain.Loan) error {
			l.ID = 1
			if l.CreatedAt.IsZero() {
				l.CreatedAt = time.Now().UTC()
			}
			return nil
		},
	}
	h := NewLoanHandler(newLoanUsecase(repo, nil))

	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", mustJSON(validApplyBody()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ApplyLoan(c); err != nil {
		t.Fatalf("ApplyLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var got uc.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.MemberID != strings.Repeat("b", 32) || got.Status != domain.StatusPendingApproval {
		t.Fatalf("unexpected dto: %+v", got)
	}
	if got.ApprovalStage != domain.StageChairperson {
		t.Fatalf("stage = %s, want chairperson", got.ApprovalStage)
	}
	if !got.MonthlyPayment.Equal(decimal.RequireFromString("4916.67")) {
		t.Fatalf("monthly = %s, want 4916.67", got.MonthlyPayment)
	}
}

func TestApplyLoan_BindError(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanHandler(newLoanUsecase(&loanmock.Repo{}, nil))

	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", strings.NewReader(`{"member_id":`)) // broken JSON
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ApplyLoan(c); err != nil {
		t.Fatalf("ApplyLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if er.Error != "invalid body" {
		t.Fatalf("error = %q, want %q", er.Error, "invalid body")
	}
}

func TestApplyLoan_ValidationError(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanHandler(newLoanUsecase(&loanmock.Repo{}, nil)) // won't be called

	// invalid: member_id not hex32, loan_type unknown, purpose too short
	body := validApplyBody()
	body["member_id"] = "NOT_HEX_32"
	body["loan_type"] = "payday"
	body["purpose"] = "fees"

	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ApplyLoan(c); err != nil {
		t.Fatalf("ApplyLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if er.Error != "validation failed" {
		t.Fatalf("error = %q, want %q", er.Error, "validation failed")
	}
	if !containsFieldMsg(er.Details, "MemberID", "32-char lowercase hex") {
		t.Fatalf("missing hex32 detail: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "LoanType", "must be one of") {
		t.Fatalf("missing oneof detail for loan_type: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "Purpose", "at least 10") {
		t.Fatalf("missing min detail for purpose: %+v", er.Details)
	}
}

func TestApplyLoan_PendingLoanConflict(t *testing.T) {
	e := newEchoWithValidator()

	// The member already has a loan under review => usecase rejects
	repo := &loanmock.Repo{
		GetPendingLoanByMemberIDFn: func(ctx context.Context, memberID string) (*domain.Loan, error) {
			return &domain.Loan{
				LoanID:          "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
				MemberID:        memberID,
				Status:          domain.StatusPendingApproval,
				ApprovalStage:   domain.StageChairperson,
				StatusUpdatedAt: time.Now().UTC(),
			}, nil
		},
	}
	h := NewLoanHandler(newLoanUsecase(repo, nil))

	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", mustJSON(validApplyBody()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ApplyLoan(c); err != nil {
		t.Fatalf("ApplyLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestApplyLoan_PolicyViolation(t *testing.T) {
	e := newEchoWithValidator()
	repo := &loanmock.Repo{
		GetPendingLoanByMemberIDFn: func(ctx context.Context, memberID string) (*domain.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	h := NewLoanHandler(newLoanUsecase(repo, nil))

	// short_term caps at 12 months
	body := validApplyBody()
	body["term_months"] = 24

	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ApplyLoan(c); err != nil {
		t.Fatalf("ApplyLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestGetLoan_Success(t *testing.T) {
	e := echo.New()

	loanID := strings.Repeat("l", 32)
	repo := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, id string) (*domain.Loan, error) {
			if id != loanID {
				return nil, gorm.ErrRecordNotFound
			}
			return &domain.Loan{
				LoanID:          id,
				MemberID:        strings.Repeat("b", 32),
				LoanType:        domain.TypeShortTerm,
				PrincipalAmount: decimal.NewFromInt(50000),
				Status:          domain.StatusPendingApproval,
				ApprovalStage:   domain.StageChairperson,
				CreatedAt:       time.Now().UTC(),
			}, nil
		},
	}
	h := NewLoanHandler(newLoanUsecase(repo, nil))

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/"+loanID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(loanID)

	if err := h.GetLoan(c); err != nil {
		t.Fatalf("GetLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var dto uc.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if dto.LoanID != loanID {
		t.Fatalf("loan_id = %s, want %s", dto.LoanID, loanID)
	}
}

func TestGetLoan_NotFound(t *testing.T) {
	e := echo.New()
	repo := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, id string) (*domain.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	h := NewLoanHandler(newLoanUsecase(repo, nil))

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/xxx", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues("xxx")

	if err := h.GetLoan(c); err != nil {
		t.Fatalf("GetLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListLoans_RequiresQuery(t *testing.T) {
	e := echo.New()
	h := NewLoanHandler(newLoanUsecase(&loanmock.Repo{}, nil))

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListLoans(c); err != nil {
		t.Fatalf("ListLoans error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestListLoans_FiltersByStage(t *testing.T) {
	e := echo.New()
	repo := &loanmock.Repo{
		ListByStatusFn: func(ctx context.Context, status domain.Status) ([]domain.Loan, error) {
			return []domain.Loan{
				{LoanID: strings.Repeat("1", 32), Status: domain.StatusPendingApproval, ApprovalStage: domain.StageChairperson},
				{LoanID: strings.Repeat("2", 32), Status: domain.StatusPendingApproval, ApprovalStage: domain.StageLoanCommittee},
			}, nil
		},
	}
	h := NewLoanHandler(newLoanUsecase(repo, nil))

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans?stage=loan_committee", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListLoans(c); err != nil {
		t.Fatalf("ListLoans error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out []uc.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(out) != 1 || out[0].ApprovalStage != domain.StageLoanCommittee {
		t.Fatalf("unexpected queue: %+v", out)
	}
}

func TestEligibility(t *testing.T) {
	e := echo.New()

	loanID := strings.Repeat("a", 32)
	repo := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, id string) (*domain.Loan, error) {
			return &domain.Loan{LoanID: id, MemberID: strings.Repeat("b", 32), PrincipalAmount: decimal.NewFromInt(100000)}, nil
		},
	}
	sav := &savingsmock.Reader{
		BalanceOfFn: func(ctx context.Context, memberID string) (decimal.Decimal, error) {
			return decimal.NewFromInt(50000), nil
		},
	}
	h := NewLoanHandler(newLoanUsecase(repo, sav))

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/"+loanID+"/eligibility", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(loanID)

	if err := h.Eligibility(c); err != nil {
		t.Fatalf("Eligibility error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got eligibility.Assessment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Tier != eligibility.TierLow || !got.EligibilityPercent.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected assessment: %+v", got)
	}
}
