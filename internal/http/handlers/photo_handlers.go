package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/phambaophuc/visa-photo/internal/config"
	"github.com/phambaophuc/visa-photo/internal/models"
	"github.com/phambaophuc/visa-photo/internal/services/compositor"
	"github.com/phambaophuc/visa-photo/internal/services/processor"
	"github.com/phambaophuc/visa-photo/internal/services/storage"
	"go.uber.org/zap"
)

const (
	imageParamKey   = "image"
	imagesParamKey  = "images"
	payloadParamKey = "payload"

	quotaRemainingHeader = "X-Quota-Remaining"

	// aspectTolerance is how far a crop may drift from 35:45 before it is logged.
	aspectTolerance = 0.01
)

type QuotaChecker interface {
	Allow(ctx context.Context, clientID string, n int) storage.Usage
	Refund(ctx context.Context, clientID string, n int)
}

type CropCache interface {
	CropCacheKey(image []byte, displayWidth, displayHeight float64, mode string) string
	GetCrop(ctx context.Context, key string) (compositor.CropRegion, bool)
	SetCrop(ctx context.Context, key string, crop compositor.CropRegion)
}

type PhotoHandler struct {
	processor *processor.ImageProcessor
	quota     QuotaChecker
	cache     CropCache
	logger    *zap.Logger
	config    config.PhotoConfig
}

// NewPhotoHandler accepts nil quota and cache; both features are then off.
func NewPhotoHandler(
	processor *processor.ImageProcessor,
	quota QuotaChecker,
	cache CropCache,
	logger *zap.Logger,
	config config.PhotoConfig,
) *PhotoHandler {
	return &PhotoHandler{
		processor: processor,
		quota:     quota,
		cache:     cache,
		logger:    logger,
		config:    config,
	}
}

// === MAIN API ENDPOINTS ===

func (h *PhotoHandler) Export(c *gin.Context) {
	header, err := c.FormFile(imageParamKey)
	if err != nil {
		respondError(c, http.StatusBadRequest, "No image file provided")
		return
	}

	var params models.ExportParams
	if err := c.ShouldBind(&params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid crop parameters: "+err.Error())
		return
	}

	req, err := h.buildExportRequest(params)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to open file")
		return
	}
	defer file.Close()

	if _, err := h.processor.ValidateImage(file); err != nil {
		h.respondProcessingError(c, err)
		return
	}

	usage, ok := h.checkQuota(c, 1)
	if !ok {
		return
	}

	req.Image = file
	result, err := h.processor.Export(req)
	if err != nil {
		h.refundQuota(c, usage, 1)
		h.respondProcessingError(c, err)
		return
	}

	if c.Query("download") == "1" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
		c.Data(http.StatusOK, "image/jpeg", result.Data)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    toExportResponse(result, req.Watermark),
	})
}

func (h *PhotoHandler) Batch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	files := form.File[imagesParamKey]
	if len(files) == 0 {
		respondError(c, http.StatusBadRequest, "No images provided")
		return
	}
	if len(files) > h.config.MaxBatch {
		respondError(c, http.StatusBadRequest,
			fmt.Sprintf("Too many images: %d exceeds the batch limit of %d", len(files), h.config.MaxBatch))
		return
	}

	var items []models.ExportParams
	if err := json.Unmarshal([]byte(c.PostForm(payloadParamKey)), &items); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid payload: "+err.Error())
		return
	}
	if len(items) != len(files) {
		respondError(c, http.StatusBadRequest,
			fmt.Sprintf("Payload has %d entries for %d images", len(items), len(files)))
		return
	}

	reqs := make([]processor.ExportRequest, len(items))
	for i := range items {
		if err := binding.Validator.ValidateStruct(&items[i]); err != nil {
			respondError(c, http.StatusBadRequest, fmt.Sprintf("photo %d: invalid crop parameters: %v", i, err))
			return
		}
		req, err := h.buildExportRequest(items[i])
		if err != nil {
			respondError(c, http.StatusBadRequest, fmt.Sprintf("photo %d: %v", i, err))
			return
		}
		reqs[i] = req
	}

	openedFiles, err := openFiles(files)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to open files")
		return
	}
	defer closeFiles(openedFiles)

	for i, f := range openedFiles {
		if _, err := h.processor.ValidateImage(f); err != nil {
			status, message := processingStatus(err)
			respondError(c, status, fmt.Sprintf("photo %d: %s", i, message))
			return
		}
		reqs[i].Image = f
	}

	usage, ok := h.checkQuota(c, len(reqs))
	if !ok {
		return
	}

	results, err := h.processor.ExportBatch(c.Request.Context(), reqs)
	if err != nil {
		h.refundQuota(c, usage, len(reqs))
		h.respondProcessingError(c, err)
		return
	}

	response := models.BatchResponse{Count: len(results), Photos: make([]models.ExportResponse, len(results))}
	for i, res := range results {
		response.Photos[i] = toExportResponse(res, reqs[i].Watermark)
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    response,
	})
}

func (h *PhotoHandler) SuggestCrop(c *gin.Context) {
	header, err := c.FormFile(imageParamKey)
	if err != nil {
		respondError(c, http.StatusBadRequest, "No image file provided")
		return
	}

	var params models.SuggestCropParams
	if err := c.ShouldBind(&params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid parameters: "+err.Error())
		return
	}

	mode, err := processor.ParseCropMode(params.Mode)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to open file")
		return
	}
	defer file.Close()

	if _, err := h.processor.ValidateImage(file); err != nil {
		h.respondProcessingError(c, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to read file")
		return
	}

	ctx := c.Request.Context()
	var cacheKey string
	if mode == processor.CropModeSmart && h.cache != nil {
		cacheKey = h.cache.CropCacheKey(data, params.DisplayWidth, params.DisplayHeight, string(mode))
		if crop, ok := h.cache.GetCrop(ctx, cacheKey); ok {
			h.logger.Debug("Crop cache hit", zap.String("cache_key", cacheKey))
			h.respondCrop(c, mode, crop, true)
			return
		}
	}

	img, err := h.processor.DecodeImage(bytes.NewReader(data))
	if err != nil {
		h.respondProcessingError(c, err)
		return
	}

	crop, err := h.processor.SuggestCrop(img, params.DisplayWidth, params.DisplayHeight, mode)
	if err != nil {
		h.respondProcessingError(c, err)
		return
	}

	if cacheKey != "" {
		h.cache.SetCrop(ctx, cacheKey, crop)
	}
	h.respondCrop(c, mode, crop, false)
}

// === HELPERS ===

func (h *PhotoHandler) buildExportRequest(params models.ExportParams) (processor.ExportRequest, error) {
	transform := params.Transform()
	if err := transform.Validate(); err != nil {
		return processor.ExportRequest{}, err
	}

	crop := params.Crop()
	if !crop.MatchesAspect(compositor.AspectRatio, aspectTolerance) {
		h.logger.Debug("Crop deviates from 35:45",
			zap.Float64("width", crop.Width),
			zap.Float64("height", crop.Height))
	}

	return processor.ExportRequest{
		Crop:          crop,
		Transform:     transform,
		DisplayWidth:  params.DisplayWidth,
		DisplayHeight: params.DisplayHeight,
		Watermark:     h.processor.WatermarkEnabled(),
	}, nil
}

// checkQuota charges n exports to the caller and writes the 429 itself when
// the daily allowance is used up.
func (h *PhotoHandler) checkQuota(c *gin.Context, n int) (storage.Usage, bool) {
	if h.quota == nil {
		return storage.Usage{Allowed: true}, true
	}

	usage := h.quota.Allow(c.Request.Context(), c.ClientIP(), n)
	if usage.Limit > 0 {
		c.Header(quotaRemainingHeader, strconv.Itoa(usage.Remaining))
	}
	if usage.Allowed {
		return usage, true
	}

	h.logger.Info("Free quota exceeded",
		zap.String("client_ip", c.ClientIP()),
		zap.Int64("used", usage.Used),
		zap.Int("limit", usage.Limit))

	c.JSON(http.StatusTooManyRequests, models.APIResponse{
		Success: false,
		Data:    usage,
		Error:   fmt.Sprintf("Daily limit of %d free exports reached", usage.Limit),
	})
	return usage, false
}

// refundQuota returns the units charged by checkQuota when processing fails.
func (h *PhotoHandler) refundQuota(c *gin.Context, usage storage.Usage, n int) {
	if h.quota == nil {
		return
	}
	h.quota.Refund(c.Request.Context(), c.ClientIP(), n)
	if usage.Limit > 0 {
		c.Header(quotaRemainingHeader, strconv.Itoa(min(usage.Remaining+n, usage.Limit)))
	}
}

func (h *PhotoHandler) respondCrop(c *gin.Context, mode processor.CropMode, crop compositor.CropRegion, cached bool) {
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data: models.CropSuggestion{
			Mode:   string(mode),
			Crop:   crop,
			Aspect: compositor.AspectRatio,
			Cached: cached,
		},
	})
}

func toExportResponse(res *processor.ExportResult, watermarked bool) models.ExportResponse {
	return models.ExportResponse{
		Filename:    res.Filename,
		Width:       res.Width,
		Height:      res.Height,
		FileSize:    len(res.Data),
		DataURL:     res.DataURL,
		Watermarked: watermarked,
	}
}
