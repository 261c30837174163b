package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"library-backend/internal/shared/utils"
)

// BorrowRequest - POST /loans
// MemberID bỏ trống: mượn cho chính principal
type BorrowRequest struct {
	MemberID string `json:"member_id"`
	BookID   string `json:"book_id" binding:"required"`
}

func (r BorrowRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MemberID, is.UUID.Error("member_id must be a UUID")),
		validation.Field(&r.BookID,
			validation.Required.Error("book_id is required"),
			is.UUID.Error("book_id must be a UUID"),
		),
	)
}

// ListLoansRequest - GET /loans?q=&open=&member_id=
type ListLoansRequest struct {
	Query    string `form:"q"`
	Open     *bool  `form:"open"`
	MemberID string `form:"member_id"`
}

func (r ListLoansRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MemberID, is.UUID.Error("member_id must be a UUID")),
	)
}

// ToFilter: Validate() phải chạy trước
func (r ListLoansRequest) ToFilter() ListFilter {
	filter := ListFilter{
		Query:    r.Query,
		OpenOnly: r.Open != nil && *r.Open,
	}
	if r.MemberID != "" {
		if id, err := uuid.Parse(r.MemberID); err == nil {
			filter.MemberID = &id
		}
	}
	return filter
}

// ReturnResult - kết quả ReturnBook
type ReturnResult struct {
	Loan            Loan
	Late            bool
	OverdueDays     int
	Fine            decimal.Decimal
	MemberSuspended bool
	Message         string
}

type LoanResponse struct {
	ID             string  `json:"id"`
	MemberID       string  `json:"member_id"`
	BookID         string  `json:"book_id"`
	BorrowDate     string  `json:"borrow_date"`
	DueDate        string  `json:"due_date"`
	ReturnDate     *string `json:"return_date"`
	BookTitle      string  `json:"book_title,omitempty"`
	MemberUsername string  `json:"member_username,omitempty"`
}

type ReturnResponse struct {
	Loan            LoanResponse `json:"loan"`
	Late            bool         `json:"late"`
	OverdueDays     int          `json:"overdue_days"`
	Fine            string       `json:"fine"`
	MemberSuspended bool         `json:"member_suspended"`
}

func (l *Loan) ToResponse() LoanResponse {
	return LoanResponse{
		ID:         l.ID.String(),
		MemberID:   l.MemberID.String(),
		BookID:     l.BookID.String(),
		BorrowDate: utils.FormatDate(l.BorrowDate),
		DueDate:    utils.FormatDate(l.DueDate),
		ReturnDate: formatOptionalDate(l.ReturnDate),
	}
}

func (d *LoanDetail) ToResponse() LoanResponse {
	loan := d.Loan()
	resp := loan.ToResponse()
	resp.BookTitle = d.BookTitle
	resp.MemberUsername = d.MemberUsername
	return resp
}

func DetailsToResponses(details []LoanDetail) []LoanResponse {
	out := make([]LoanResponse, 0, len(details))
	for i := range details {
		out = append(out, details[i].ToResponse())
	}
	return out
}

func (r *ReturnResult) ToResponse() ReturnResponse {
	return ReturnResponse{
		Loan:            r.Loan.ToResponse(),
		Late:            r.Late,
		OverdueDays:     r.OverdueDays,
		Fine:            r.Fine.StringFixed(2),
		MemberSuspended: r.MemberSuspended,
	}
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := utils.FormatDate(*t)
	return &s
}
