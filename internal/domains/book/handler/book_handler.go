package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookmarket-backend/internal/domains/book/model"
	"bookmarket-backend/internal/domains/book/service"
	contributormodel "bookmarket-backend/internal/domains/contributor/model"
	"bookmarket-backend/internal/shared/middleware"
	"bookmarket-backend/internal/shared/response"
	"bookmarket-backend/internal/shared/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// parseListRequest đọc page, limit, sort, min_price, max_price, category
func parseListRequest(c *gin.Context) (model.ListBooksRequest, bool) {
	page := utils.ParsePagination(c)
	minPrice, ok := utils.QueryFloat(c, "min_price")
	if !ok {
		response.BadRequest(c, "min_price must be a number")
		return model.ListBooksRequest{}, false
	}
	maxPrice, ok := utils.QueryFloat(c, "max_price")
	if !ok {
		response.BadRequest(c, "max_price must be a number")
		return model.ListBooksRequest{}, false
	}

	return model.ListBooksRequest{
		Page:     page.Page,
		Limit:    page.Limit,
		Sort:     c.Query("sort"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Category: c.Query("category"),
	}, true
}

// ListBooks - GET /v1/books
// Query params: page, limit, sort, min_price, max_price, category
func (h *Handler) ListBooks(c *gin.Context) {
	req, ok := parseListRequest(c)
	if !ok {
		return
	}

	books, total, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, len(books), books, response.NewMeta(req.Page, req.Limit, total))
}

// ListContributorBooks - GET /v1/contributors/:id/books
func (h *Handler) ListContributorBooks(c *gin.Context) {
	contributorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.FromError(c, contributormodel.ErrContributorNotFound)
		return
	}

	books, err := h.service.ListByContributor(c.Request.Context(), contributorID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithCount(c, http.StatusOK, len(books), books)
}

// GetBook - GET /v1/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	book, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book)
}

// CreateBook - POST /v1/contributors/:id/books
// Yêu cầu: contributor|admin (middleware) + sở hữu contributor (service)
func (h *Handler) CreateBook(c *gin.Context) {
	// STEP 1: GET ACTOR
	actor, err := middleware.MustActor(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	contributorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.FromError(c, contributormodel.ErrContributorNotFound)
		return
	}

	// STEP 2: PARSE BODY
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// STEP 3: CALL SERVICE
	book, err := h.service.Create(c.Request.Context(), actor, contributorID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Location", "/api/v1/books/"+book.ID.String())
	response.Success(c, http.StatusCreated, book)
}

// UpdateBook - PUT /v1/books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	actor, err := middleware.MustActor(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	book, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book)
}

// DeleteBook - DELETE /v1/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	actor, err := middleware.MustActor(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ExportBooks - GET /v1/books/export
// Cùng filter với ListBooks, trả về file .xlsx
func (h *Handler) ExportBooks(c *gin.Context) {
	req, ok := parseListRequest(c)
	if !ok {
		return
	}

	f, rows, err := h.service.ExportBooksToExcel(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("books_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Int("rows", rows).Msg("failed to stream books export")
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.FromError(c, model.ErrBookNotFound)
		return uuid.Nil, false
	}
	return id, true
}
