package loan

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusDraft           Status = "draft"
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
	StatusDisbursed       Status = "disbursed"
	StatusRepaying        Status = "repaying"
	StatusCompleted       Status = "completed"
	StatusDefaulted       Status = "defaulted"
)

// Terminal reports whether no further transition may leave this status.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted || s == StatusDefaulted
}

// Stage is the reviewing body that must act next while the loan is
// pending_approval. Order: chairperson → loan_committee → management_committee.
type Stage string

const (
	StageChairperson         Stage = "chairperson"
	StageLoanCommittee       Stage = "loan_committee"
	StageManagementCommittee Stage = "management_committee"
	StageCompleted           Stage = "completed"
)

type Role string

const (
	RoleAdmin               Role = "admin"
	RoleAccountant          Role = "accountant"
	RoleLoanCommittee       Role = "loan_committee"
	RoleManagementCommittee Role = "management_committee"
	RoleChairperson         Role = "chairperson"
	RoleMember              Role = "member"
)

var stageOrder = []Stage{StageChairperson, StageLoanCommittee, StageManagementCommittee}

var stageRoles = map[Stage]Role{
	StageChairperson:         RoleChairperson,
	StageLoanCommittee:       RoleLoanCommittee,
	StageManagementCommittee: RoleManagementCommittee,
}

// RequiredRole returns the role allowed to decide the given stage.
func RequiredRole(s Stage) (Role, bool) {
	r, ok := stageRoles[s]
	return r, ok
}

// NextStage returns the stage after s, or StageCompleted when s is final.
func NextStage(s Stage) Stage {
	for i, st := range stageOrder {
		if st == s {
			if i == len(stageOrder)-1 {
				return StageCompleted
			}
			return stageOrder[i+1]
		}
	}
	return StageCompleted
}

// FinalStage reports whether s is the last reviewing stage.
func FinalStage(s Stage) bool { return s == stageOrder[len(stageOrder)-1] }

type Type string

const (
	TypeShortTerm Type = "short_term"
	TypeLongTerm  Type = "long_term"
	TypeHoliday   Type = "holiday"
)

type Loan struct {
	ID               uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID           string          `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	MemberID         string          `gorm:"size:32;index:idx_loans_member_active" json:"member_id"`
	LoanType         Type            `gorm:"type:enum('short_term','long_term','holiday')" json:"loan_type"`
	PrincipalAmount  decimal.Decimal `gorm:"type:decimal(18,2)" json:"principal_amount"`
	InterestRate     decimal.Decimal `gorm:"type:decimal(6,2)" json:"interest_rate"`
	TermMonths       int             `gorm:"column:term_months" json:"term_months"`
	TotalInterest    decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_interest"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_amount"`
	MonthlyPayment   decimal.Decimal `gorm:"type:decimal(18,2)" json:"monthly_payment"`
	RemainingBalance decimal.Decimal `gorm:"type:decimal(18,2)" json:"remaining_balance"`
	Purpose          string          `gorm:"type:text" json:"purpose"`

	Status        Status `gorm:"type:enum('draft','pending_approval','approved','rejected','disbursed','repaying','completed','defaulted');default:'pending_approval'" json:"status"`
	ApprovalStage Stage  `gorm:"type:enum('chairperson','loan_committee','management_committee','completed');default:'chairperson'" json:"approval_stage"`

	ApplicationDate  time.Time  `gorm:"column:application_date" json:"application_date"`
	ApprovalDate     *time.Time `gorm:"column:approval_date" json:"approval_date,omitempty"`
	DisbursementDate *time.Time `gorm:"column:disbursement_date" json:"disbursement_date,omitempty"`
	CompletionDate   *time.Time `gorm:"column:completion_date" json:"completion_date,omitempty"`

	StatusUpdatedAt time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }
