package models

import (
	"time"

	"gorm.io/gorm"
)

// Rule is a named sub-rule: a raw boolean predicate referenced by numeric id
// from RuleStateMapping expressions.
type Rule struct {
	ID          int64  `gorm:"primaryKey"`
	WorkspaceID string `gorm:"index"`
	MerchantID  string
	Predicate   string `gorm:"column:rule"`
	FileType1ID string
	FileType2ID string
	IsSelfRule  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
}

// ReconState is the outcome state a matching rule maps to, with the remark
// text analysts expect to see on records that land in that state.
type ReconState struct {
	ID         int64 `gorm:"primaryKey"`
	State      string
	Rank       int
	IsInternal bool
	ParentID   *int64
	ArtRemarks string
	DeletedAt  gorm.DeletedAt
}

// RuleStateMapping binds a rule expression (possibly composed of sub-rule ids,
// e.g. "12 and 15") to the recon state expected when the expression holds.
// SeqNumber orders evaluation: lower numbers first, first match wins.
type RuleStateMapping struct {
	ID             int64  `gorm:"primaryKey"`
	WorkspaceID    string `gorm:"index"`
	MerchantID     string
	RuleExpression string
	FileType1ID    string
	FileType2ID    string
	ReconStateID   int64
	SeqNumber      *int
	WorkflowID     string
	ReconState     ReconState `gorm:"foreignKey:ReconStateID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt
}

func (RuleStateMapping) TableName() string { return "rule_recon_state_map" }
