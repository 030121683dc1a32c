package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/anistreamdev/anistream/internal/application"
	"github.com/anistreamdev/anistream/internal/domain/entity"
	"github.com/anistreamdev/anistream/internal/domain/repository"
	"github.com/anistreamdev/anistream/internal/interface/middleware"
	"github.com/anistreamdev/anistream/pkg/response"
	"github.com/anistreamdev/anistream/pkg/validation"
)

type AnimeHandler struct {
	Svc    *application.AnimeService
	Logger *logrus.Logger
}

func NewAnimeHandler(svc *application.AnimeService, logger *logrus.Logger) *AnimeHandler {
	return &AnimeHandler{Svc: svc, Logger: logger}
}

type uploadAnimeRequest struct {
	Title         string `json:"title" binding:"required,min=1,max=255"`
	Description   string `json:"description"`
	Genre         string `json:"genre" binding:"omitempty,max=255"`
	Episodes      int    `json:"episodes" binding:"omitempty,gte=0"`
	Status        string `json:"status" binding:"omitempty,animestatus"`
	CoverImageURL string `json:"cover_image_url" binding:"omitempty,url"`
	TrailerURL    string `json:"trailer_url" binding:"omitempty,url"`
	ReleaseYear   int    `json:"release_year" binding:"omitempty,gte=1900,lte=2100"`
	IsPremiumOnly bool   `json:"is_premium_only"`
}

type updateAnimeRequest struct {
	Title         *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description   *string `json:"description"`
	Genre         *string `json:"genre" binding:"omitempty,max=255"`
	Episodes      *int    `json:"episodes" binding:"omitempty,gte=0"`
	Status        *string `json:"status" binding:"omitempty,animestatus"`
	CoverImageURL *string `json:"cover_image_url" binding:"omitempty,url"`
	TrailerURL    *string `json:"trailer_url" binding:"omitempty,url"`
	ReleaseYear   *int    `json:"release_year" binding:"omitempty,gte=1900,lte=2100"`
	Rating        *int    `json:"rating" binding:"omitempty,rating100"`
	IsPremiumOnly *bool   `json:"is_premium_only"`
}

// List is public: optional title search and premium filter, newest first.
func (h *AnimeHandler) List(c *gin.Context) {
	limit, offset := pageParams(c, 20, 100)
	filter := repository.AnimeFilter{
		Limit:  limit,
		Offset: offset,
		Search: c.Query("search"),
	}
	if v := c.Query("premium_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid premium_only", nil)
			return
		}
		filter.PremiumOnly = &b
	}

	animes, err := h.Svc.List(c.Request.Context(), filter)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, animeListJSON(animes), "anime list",
		gin.H{"limit": limit, "offset": offset, "count": len(animes)})
}

func (h *AnimeHandler) Detail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	a, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, animeJSON(a), "anime detail", nil)
}

// Search queries the search index; distinct from List, which hits the row
// store directly.
func (h *AnimeHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

func (h *AnimeHandler) Upload(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)

	var req uploadAnimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	a, err := h.Svc.Upload(c.Request.Context(), id.UserID, application.CreateAnimeInput{
		Title:         req.Title,
		Description:   req.Description,
		Genre:         req.Genre,
		Episodes:      req.Episodes,
		Status:        entity.AnimeStatus(req.Status),
		CoverImageURL: req.CoverImageURL,
		TrailerURL:    req.TrailerURL,
		ReleaseYear:   req.ReleaseYear,
		IsPremiumOnly: req.IsPremiumOnly,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, animeJSON(a), "anime uploaded", nil)
}

func (h *AnimeHandler) Update(c *gin.Context) {
	adminID, _ := middleware.CurrentIdentity(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req updateAnimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	in := application.UpdateAnimeInput{
		Title:         req.Title,
		Description:   req.Description,
		Genre:         req.Genre,
		Episodes:      req.Episodes,
		CoverImageURL: req.CoverImageURL,
		TrailerURL:    req.TrailerURL,
		ReleaseYear:   req.ReleaseYear,
		Rating:        req.Rating,
		IsPremiumOnly: req.IsPremiumOnly,
	}
	if req.Status != nil {
		status := entity.AnimeStatus(*req.Status)
		in.Status = &status
	}

	if err := h.Svc.Update(c.Request.Context(), adminID.UserID, id, in); err != nil {
		serviceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"updated": true}, "anime updated", nil)
}

func (h *AnimeHandler) Delete(c *gin.Context) {
	adminID, _ := middleware.CurrentIdentity(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), adminID.UserID, id); err != nil {
		serviceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "anime deleted", nil)
}

// UploadCover accepts a multipart "cover" file and stores it in GCS.
func (h *AnimeHandler) UploadCover(c *gin.Context) {
	adminID, _ := middleware.CurrentIdentity(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	fh, err := c.FormFile("cover")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing cover file", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable cover file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadCover(c.Request.Context(), adminID.UserID, id, f,
		fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"cover_image_url": url}, "cover uploaded", nil)
}
