package models

// ReportModel is the ledger row recorded once per generated report.
// Rows are never mutated after creation.
type ReportModel struct {
	Base
	UserID           string `json:"-"                 gorm:"index;not null"`
	Topic            string `json:"topic"             gorm:"type:text;not null"`
	Filename         string `json:"filename"          gorm:"uniqueIndex;not null"`
	FilePath         string `json:"-"                 gorm:"not null"`
	GenerationMethod string `json:"generation_method" gorm:"index"`
}

func (ReportModel) TableName() string { return "reports" }
