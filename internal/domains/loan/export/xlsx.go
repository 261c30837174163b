// Package export renders the loan ledger as an XLSX workbook.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/shared/utils"
)

const (
	SheetName   = "Loans"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var headers = []string{
	"Loan ID",
	"Member ID",
	"Member",
	"Book ID",
	"Book",
	"Borrow Date",
	"Due Date",
	"Return Date",
	"Status",
}

// BuildWorkbook: header ở row 1, mỗi loan một row từ row 2
func BuildWorkbook(loans []model.LoanDetail) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(SheetName, "A1", lastHeader, headerStyle)
	}

	for i, l := range loans {
		returnDate := ""
		status := "open"
		if l.ReturnDate != nil {
			returnDate = utils.FormatDate(*l.ReturnDate)
			status = "returned"
		}

		row := []interface{}{
			l.ID.String(),
			l.MemberID.String(),
			l.MemberUsername,
			l.BookID.String(),
			l.BookTitle,
			utils.FormatDate(l.BorrowDate),
			utils.FormatDate(l.DueDate),
			returnDate,
			status,
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return f, nil
}
