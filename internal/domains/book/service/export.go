package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"bookmarket-backend/internal/domains/book/model"
	"bookmarket-backend/internal/shared/apperror"
)

const exportSheet = "Book list"

var exportHeaders = []string{
	"ID",
	"Title",
	"Slug",
	"Authors",
	"Publisher",
	"Category",
	"Price",
	"Pages",
	"Language",
	"Published Year",
	"ISBN",
	"Contributor",
	"Location",
	"Created At",
}

// ExportBooksToExcel lấy toàn bộ sách theo filter (không phân trang) và
// ghi ra sheet "Book list". Trả về file và số dòng dữ liệu.
func (s *BookService) ExportBooksToExcel(ctx context.Context, req model.ListBooksRequest) (*excelize.File, int, error) {
	// 1. Export không phân trang
	req.Page = 1
	req.Limit = 0
	if err := req.Validate(); err != nil {
		return nil, 0, apperror.FromValidation(err)
	}

	// 2. Lấy dữ liệu
	books, _, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}

	// 3. Tạo file Excel
	f, err := buildBooksExcelFile(books)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build excel file: %w", err)
	}
	return f, len(books), nil
}

func buildBooksExcelFile(books []*model.Book) (*excelize.File, error) {
	f := excelize.NewFile()

	// Rename default sheet
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	// Row 1: Header
	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		lastCol, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		_ = f.SetCellStyle(exportSheet, "A1", lastCol, headerStyle)
	}

	// Data rows, bắt đầu từ row 2
	for i, b := range books {
		rowNum := i + 2

		values := []interface{}{
			b.ID.String(),
			b.Title,
			b.Slug,
			b.Authors,
			b.Publisher,
			strings.Join(b.Category, ", "),
			b.Price.InexactFloat64(),
			b.Pages,
			b.Language,
			nil,
			nil,
			nil,
			b.Location.FormattedAddress,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if b.PublishedYear != nil {
			values[9] = *b.PublishedYear
		}
		if b.ISBN != nil {
			values[10] = *b.ISBN
		}
		if b.Contributor != nil {
			values[11] = b.Contributor.Name
		}

		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
