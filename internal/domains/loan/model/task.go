package model

// SuspensionNoticePayload - payload của task loan:suspension_notice
type SuspensionNoticePayload struct {
	MemberID    string `json:"member_id"`
	LoanID      string `json:"loan_id"`
	BookID      string `json:"book_id"`
	DueDate     string `json:"due_date"`
	ReturnDate  string `json:"return_date"`
	OverdueDays int    `json:"overdue_days"`
	Fine        string `json:"fine"`
}

// ScanOverduePayload - payload của task loan:scan_overdue (scheduler)
type ScanOverduePayload struct{}
