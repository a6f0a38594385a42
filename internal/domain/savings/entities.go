package savings

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrAccountNotFound = errors.New("savings account not found")

// Account is owned by the savings subsystem; the loan core only reads it.
type Account struct {
	ID                  uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	MemberID            string          `gorm:"column:member_id;type:char(32);not null;uniqueIndex:ux_savings_member" json:"member_id"`
	Balance             decimal.Decimal `gorm:"column:balance;type:decimal(18,2)" json:"balance"`
	MonthlyContribution decimal.Decimal `gorm:"column:monthly_contribution;type:decimal(18,2)" json:"monthly_contribution"`
	UpdatedAt           time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "savings_accounts" }

type TransactionType string

const (
	TxSavingsDeposit    TransactionType = "savings_deposit"
	TxSavingsWithdrawal TransactionType = "savings_withdrawal"
	TxLoanDisbursement  TransactionType = "loan_disbursement"
	TxLoanRepayment     TransactionType = "loan_repayment"
)

// Transaction is the ledger entry the loan operations append alongside a
// disbursement or repayment.
type Transaction struct {
	ID            uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	TransactionID string          `gorm:"column:transaction_id;type:char(32);not null;uniqueIndex:ux_transactions_tx_id" json:"transaction_id"`
	MemberID      string          `gorm:"column:member_id;type:char(32);not null;index" json:"member_id"`
	Type          TransactionType `gorm:"column:type;type:enum('savings_deposit','savings_withdrawal','loan_disbursement','loan_repayment');not null" json:"type"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(18,2)" json:"amount"`
	LoanID        *uint64         `gorm:"column:loan_id;index" json:"-"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string { return "transactions" }
