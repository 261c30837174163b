package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateBookRequest - POST /books (librarian)
type CreateBookRequest struct {
	Title    string `json:"title" binding:"required"`
	Author   string `json:"author" binding:"required"`
	Year     int    `json:"year"`
	Category string `json:"category"`
	Copies   int    `json:"copies"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Year, validation.Min(0), validation.Max(9999)),
		validation.Field(&r.Category, validation.Length(0, 100)),
		validation.Field(&r.Copies, validation.Min(0).Error("copies must not be negative")),
	)
}

// ListBooksRequest - GET /books?q=
// q khớp (không phân biệt hoa thường) title, author, category hoặc year
type ListBooksRequest struct {
	Query string `form:"q"`
}

type BookResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Year            int    `json:"year"`
	Category        string `json:"category"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
	Available       bool   `json:"available"`
}

func (b *Book) ToResponse() BookResponse {
	return BookResponse{
		ID:              b.ID.String(),
		Title:           b.Title,
		Author:          b.Author,
		Year:            b.Year,
		Category:        b.Category,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		Available:       b.IsAvailable(),
	}
}

func ToResponses(books []Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for i := range books {
		out = append(out, books[i].ToResponse())
	}
	return out
}
