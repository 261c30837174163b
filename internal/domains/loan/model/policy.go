package model

import (
	"time"

	"github.com/shopspring/decimal"

	"library-backend/internal/shared/utils"
)

// Policy - quy tắc mượn: thời hạn, tiền phạt mỗi ngày trễ, timezone của "hôm nay"
type Policy struct {
	PeriodDays int
	FinePerDay decimal.Decimal
	Location   *time.Location
}

// Today trả về ngày lịch hiện tại theo Location
func (p Policy) Today(now time.Time) time.Time {
	return utils.DateOf(now, p.Location)
}

func (p Policy) DueDate(borrowDate time.Time) time.Time {
	return borrowDate.AddDate(0, 0, p.PeriodDays)
}

// Fine chỉ để hiển thị, không lưu DB
func (p Policy) Fine(overdueDays int) decimal.Decimal {
	if overdueDays <= 0 {
		return decimal.Zero
	}
	return p.FinePerDay.Mul(decimal.NewFromInt(int64(overdueDays)))
}
