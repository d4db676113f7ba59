package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	contributormodel "bookmarket-backend/internal/domains/contributor/model"
	"bookmarket-backend/internal/domains/review/model"
	"bookmarket-backend/internal/domains/review/service"
	"bookmarket-backend/internal/shared/middleware"
	"bookmarket-backend/internal/shared/response"
	"bookmarket-backend/internal/shared/utils"
)

// =====================================================
// REVIEW HANDLER
// =====================================================

type ReviewHandler struct {
	reviewService service.ServiceInterface
}

func NewReviewHandler(reviewService service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// =====================================================
// PUBLIC ENDPOINTS
// =====================================================

// ListReviews
// GET /api/v1/reviews?page&limit&sort&min_rating
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	page := utils.ParsePagination(c)
	req := model.ListReviewsRequest{
		Page:  page.Page,
		Limit: page.Limit,
		Sort:  c.Query("sort"),
	}
	if v := c.Query("min_rating"); v != "" {
		rating, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(c, "min_rating must be an integer")
			return
		}
		req.MinRating = rating
	}

	reviews, total, err := h.reviewService.ListReviews(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, len(reviews), reviews, response.NewMeta(req.Page, req.Limit, total))
}

// GetReview
// GET /api/v1/reviews/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	review, err := h.reviewService.GetReview(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, review)
}

// ListContributorReviews
// GET /api/v1/contributors/:id/reviews
func (h *ReviewHandler) ListContributorReviews(c *gin.Context) {
	contributorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.FromError(c, contributormodel.ErrContributorNotFound)
		return
	}

	reviews, err := h.reviewService.ListContributorReviews(c.Request.Context(), contributorID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithCount(c, http.StatusOK, len(reviews), reviews)
}

// =====================================================
// USER REVIEW ENDPOINTS
// =====================================================

// CreateReview creates new review
// POST /api/v1/contributors/:id/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	// Step 1: Get actor from auth middleware
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

	// Step 2: Bind request
	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Step 3: Create review
	review, err := h.reviewService.CreateReview(c.Request.Context(), actor, contributorID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, review)
}

// UpdateReview
// PUT /api/v1/reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	actor, err := middleware.MustActor(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), actor, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, review)
}

// DeleteReview
// DELETE /api/v1/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	actor, err := middleware.MustActor(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), actor, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.FromError(c, model.ErrReviewNotFound)
		return uuid.Nil, false
	}
	return id, true
}
