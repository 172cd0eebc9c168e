package report

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/reportgen/core/internal/middleware"
	"github.com/reportgen/core/internal/models"
	"github.com/reportgen/core/internal/modules/render"
	"github.com/reportgen/core/internal/modules/retrieval"
	"github.com/reportgen/core/internal/pkg/pagination"
	"github.com/reportgen/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Handler struct {
	db       *gorm.DB
	svc      *Service
	renderer *render.Renderer
	registry *retrieval.Registry
}

func NewHandler(db *gorm.DB, svc *Service, renderer *render.Renderer, registry *retrieval.Registry) *Handler {
	return &Handler{db: db, svc: svc, renderer: renderer, registry: registry}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	reports := rg.Group("/reports", authMW)
	reports.POST("/generate", h.generate)
	reports.POST("/generate/enhanced", h.generateEnhanced)
	reports.POST("/generate/comparative", h.generateComparative)
	reports.POST("/generate/document", h.generateDocument)
	reports.POST("/generate/market", h.generateMarket)
	reports.POST("/summary", h.summarize)
	reports.GET("", h.list)
	reports.GET("/download/:filename", h.download)
	reports.GET("/download-json/:filename", h.downloadJSON)

	stores := rg.Group("/vector-stores", authMW)
	stores.POST("", h.createStore)
	stores.GET("", h.listStores)

	rg.GET("/ai/status", h.aiStatus)
}

// finish renders the generated content to PDF, records the ledger row, and
// writes the response. Shared by every generation endpoint.
func (h *Handler) finish(c *gin.Context, topic string, result Result) {
	userID := middleware.CurrentUserID(c)

	filename, err := h.renderer.CreateReport(topic, result.Content, h.authorName(userID))
	if err != nil {
		response.InternalError(c, err)
		return
	}

	row := models.ReportModel{
		UserID:           userID,
		Topic:            topic,
		Filename:         filename,
		FilePath:         h.renderer.FilePath(filename),
		GenerationMethod: result.GenerationMethod,
	}
	if err := h.db.Create(&row).Error; err != nil {
		response.InternalError(c, err)
		return
	}

	response.OK(c, generationResponse{
		Content:          result.Content,
		Filename:         filename,
		GenerationMethod: result.GenerationMethod,
	})
}

func (h *Handler) authorName(userID string) string {
	var u models.UserModel
	if err := h.db.Select("username").Where("id = ?", userID).First(&u).Error; err != nil {
		return "Unknown"
	}
	return u.Username
}

// POST /reports/generate
func (h *Handler) generate(c *gin.Context) {
	var dto generateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.svc.GenerateBasic(c.Request.Context(), dto.Topic)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.finish(c, dto.Topic, result)
}

// POST /reports/generate/enhanced
func (h *Handler) generateEnhanced(c *gin.Context) {
	var dto enhancedDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.svc.GenerateEnhanced(c.Request.Context(), middleware.CurrentUserID(c), dto.Topic, dto.AdditionalContext, dto.IncludeMemory)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.finish(c, dto.Topic, result)
}

// POST /reports/generate/comparative
func (h *Handler) generateComparative(c *gin.Context) {
	var dto comparativeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.svc.GenerateComparative(c.Request.Context(), dto.Topics, dto.AnalysisType)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.finish(c, fmt.Sprintf("Comparative Analysis: %s", joinTopics(dto.Topics)), result)
}

// POST /reports/generate/document
func (h *Handler) generateDocument(c *gin.Context) {
	var dto documentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.svc.GenerateDocumentBased(c.Request.Context(), dto.Topic, dto.DocumentContent, dto.StoreName)
	if err != nil {
		if errors.Is(err, retrieval.ErrStoreNotFound) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.BadRequest(c, err.Error())
		return
	}
	h.finish(c, dto.Topic, result)
}

// POST /reports/generate/market
func (h *Handler) generateMarket(c *gin.Context) {
	var dto marketDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.svc.MarketAnalysis(c.Request.Context(), dto.Topic, dto.MarketFocus)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.finish(c, dto.Topic, result)
}

// POST /reports/summary
func (h *Handler) summarize(c *gin.Context) {
	var dto summaryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.svc.Summarize(c.Request.Context(), dto.FullReport)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, result)
}

// GET /reports
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)

	var rows []models.ReportModel
	db := h.db.Model(&models.ReportModel{}).
		Where("user_id = ?", middleware.CurrentUserID(c)).
		Order("created_at DESC")

	pg, err := pagination.Paginate(db, q, &rows)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, rows, pg)
}

// lookupOwned resolves filename to the caller's ledger row. Returns false
// after writing the error response.
func (h *Handler) lookupOwned(c *gin.Context, filename string) bool {
	if render.SafeName(filename) == "" {
		response.NotFound(c)
		return false
	}

	var row models.ReportModel
	err := h.db.Where("filename = ?", filename).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(c)
		return false
	}
	if err != nil {
		response.InternalError(c, err)
		return false
	}
	if row.UserID != middleware.CurrentUserID(c) {
		response.Forbidden(c, "access denied")
		return false
	}
	return true
}

// GET /reports/download/:filename
func (h *Handler) download(c *gin.Context) {
	filename := c.Param("filename")
	if !h.lookupOwned(c, filename) {
		return
	}

	data, err := h.renderer.Read(filename)
	if errors.Is(err, os.ErrNotExist) {
		response.NotFound(c)
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// GET /reports/download-json/:filename
func (h *Handler) downloadJSON(c *gin.Context) {
	filename := c.Param("filename")
	if !h.lookupOwned(c, filename) {
		return
	}

	data, err := h.renderer.Read(filename)
	if errors.Is(err, os.ErrNotExist) {
		response.NotFound(c)
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	response.OK(c, gin.H{
		"filename":  filename,
		"content":   base64.StdEncoding.EncodeToString(data),
		"size":      len(data),
		"mime_type": "application/pdf",
	})
}

// POST /vector-stores
func (h *Handler) createStore(c *gin.Context) {
	var dto createStoreDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ix, err := h.registry.Create(c.Request.Context(), dto.Name, dto.DocumentContent)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Created(c, gin.H{
		"name":        dto.Name,
		"chunk_count": ix.Len(),
	})
}

// GET /vector-stores
func (h *Handler) listStores(c *gin.Context) {
	names, err := h.registry.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"stores": names})
}

// GET /ai/status
func (h *Handler) aiStatus(c *gin.Context) {
	response.OK(c, h.svc.Status())
}

func joinTopics(topics []string) string {
	out := ""
	for i, t := range topics {
		if i > 0 {
			out += " vs "
		}
		out += t
	}
	return out
}
