package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookmarket-backend/internal/domains/contributor/model"
	"bookmarket-backend/internal/domains/contributor/service"
	"bookmarket-backend/internal/shared/middleware"
	"bookmarket-backend/internal/shared/response"
	"bookmarket-backend/internal/shared/utils"
)

// =====================================================
// CONTRIBUTOR HANDLER
// =====================================================

type ContributorHandler struct {
	service      service.ServiceInterface
	maxFileBytes int64
}

func NewContributorHandler(service service.ServiceInterface, maxFileBytes int64) *ContributorHandler {
	return &ContributorHandler{service: service, maxFileBytes: maxFileBytes}
}

// ListContributors xử lý GET /contributors
func (h *ContributorHandler) ListContributors(c *gin.Context) {
	// STEP 1: PARSE QUERY
	page := utils.ParsePagination(c)
	minCost, ok := utils.QueryFloat(c, "min_cost")
	if !ok {
		response.BadRequest(c, "min_cost must be a number")
		return
	}
	maxCost, ok := utils.QueryFloat(c, "max_cost")
	if !ok {
		response.BadRequest(c, "max_cost must be a number")
		return
	}

	req := model.ListContributorsRequest{
		Page:    page.Page,
		Limit:   page.Limit,
		Sort:    c.Query("sort"),
		MinCost: minCost,
		MaxCost: maxCost,
		City:    c.Query("city"),
	}

	// STEP 2: CALL SERVICE
	items, total, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	// STEP 3: RESPONSE
	response.SuccessWithMeta(c, http.StatusOK, len(items), items, response.NewMeta(req.Page, req.Limit, total))
}

// GetContributor xử lý GET /contributors/:id
func (h *ContributorHandler) GetContributor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	contributor, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, contributor)
}

// GetContributorsInRadius xử lý GET /contributors/radius/:zipcode/:distance
func (h *ContributorHandler) GetContributorsInRadius(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil {
		response.BadRequest(c, "distance must be a number of kilometers")
		return
	}

	items, err := h.service.ListWithinRadius(c.Request.Context(), model.RadiusRequest{
		Zipcode:  c.Param("zipcode"),
		Distance: distance,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithCount(c, http.StatusOK, len(items), items)
}

// CreateContributor xử lý POST /contributors
func (h *ContributorHandler) CreateContributor(c *gin.Context) {
	// STEP 1: GET ACTOR
	actor, err := middleware.MustActor(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	// STEP 2: PARSE BODY
	var req model.CreateContributorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// STEP 3: CALL SERVICE
	contributor, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Location", "/api/v1/contributors/"+contributor.ID.String())
	response.Success(c, http.StatusCreated, contributor)
}

// UpdateContributor xử lý PUT /contributors/:id
func (h *ContributorHandler) UpdateContributor(c *gin.Context) {
	actor, err := middleware.MustActor(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateContributorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	contributor, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, contributor)
}

// DeleteContributor xử lý DELETE /contributors/:id
func (h *ContributorHandler) DeleteContributor(c *gin.Context) {
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

// UploadPhoto xử lý PUT /contributors/:id/photo (multipart field "file")
func (h *ContributorHandler) UploadPhoto(c *gin.Context) {
	actor, err := middleware.MustActor(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	// STEP 1: READ FILE
	// Không có file thì data = nil; service kiểm tra contributor, ownership
	// trước rồi mới tới file và kích thước
	var data []byte
	if fileHeader, err := c.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			response.BadRequest(c, "Cannot read uploaded file")
			return
		}
		defer file.Close()

		// đọc tối đa max+1 byte để service tự kiểm tra kích thước
		data, err = io.ReadAll(io.LimitReader(file, h.maxFileBytes+1))
		if err != nil {
			response.BadRequest(c, "Cannot read uploaded file")
			return
		}
	}

	// STEP 2: CALL SERVICE
	filename, err := h.service.UploadPhoto(c.Request.Context(), actor, id, data)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, filename)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.FromError(c, model.ErrContributorNotFound)
		return uuid.Nil, false
	}
	return id, true
}
