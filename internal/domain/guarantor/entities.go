package guarantor

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("guarantor not found")

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Guarantor is another member's commitment to cover part of a loan on
// default.
type Guarantor struct {
	ID               uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	GuarantorID      string          `gorm:"column:guarantor_id;type:char(32);not null;uniqueIndex:ux_guarantors_guarantor_id" json:"guarantor_id"`
	LoanID           uint64          `gorm:"column:loan_id;not null;index" json:"-"`
	MemberID         string          `gorm:"column:member_id;type:char(32);not null" json:"member_id"`
	GuaranteedAmount decimal.Decimal `gorm:"column:guaranteed_amount;type:decimal(18,2)" json:"guaranteed_amount"`
	Status           Status          `gorm:"column:status;type:enum('pending','accepted','declined');default:'pending'" json:"status"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Guarantor) TableName() string { return "guarantors" }
