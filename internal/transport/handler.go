package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go-menu-gallery/internal/config"
	apperrors "go-menu-gallery/internal/errors"
	"go-menu-gallery/internal/logger"
	"go-menu-gallery/internal/observer"
	"go-menu-gallery/internal/service"
	"go-menu-gallery/pkg/carousel"
	"go-menu-gallery/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// HeaderRequestID carries the per-request correlation id
const HeaderRequestID = "X-Request-ID"

type handler struct {
	svc     service.MenuImageService
	metrics *observer.MetricsObserver
	cfg     *config.Config
}

// NewHandler wires the menu image API onto a gin engine
func NewHandler(svc service.MenuImageService, metrics *observer.MetricsObserver, cfg *config.Config) http.Handler {
	r := gin.New()
	h := &handler{svc: svc, metrics: metrics, cfg: cfg}

	// Add middleware
	r.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(),
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	// Configure routes
	r.GET("/health", healthCheck)
	r.GET("/metrics", h.getMetrics)

	circles := r.Group("/circles/:id/menu-images")
	circles.GET("", h.getImages)
	circles.PUT("", h.saveImages)
	circles.POST("", h.addImage)
	circles.DELETE("", h.clearImages)
	circles.GET("/check", h.checkImages)
	circles.POST("/repair", h.repairImages)
	circles.DELETE("/:imageId", h.removeImage)
	circles.POST("/:imageId/move", h.moveImage)

	r.POST("/validate/file", h.validateFile)
	r.POST("/validate/set", h.validateSet)
	r.POST("/probe", h.probeImage)

	return r
}

func (h *handler) withTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.cfg.RequestTimeout)
}

func (h *handler) getImages(c *gin.Context) {
	ctx, cancel := h.withTimeout(c)
	defer cancel()
	circleID := c.Param("id")

	position, hasPosition := c.GetQuery("position")
	if !hasPosition {
		images, err := h.svc.GetImages(ctx, circleID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondSet(c, http.StatusOK, circleID, images)
		return
	}

	index, err := strconv.Atoi(position)
	if err != nil {
		respondError(c, apperrors.NewValidationError("position must be an integer", err))
		return
	}
	view, err := h.svc.OpenCarousel(ctx, circleID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, carouselView(circleID, view, index))
}

func (h *handler) saveImages(c *gin.Context) {
	var req models.SaveImagesRequest
	if !bind(c, &req) {
		return
	}
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	images, err := h.svc.SaveImages(ctx, c.Param("id"), req.Images)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSet(c, http.StatusOK, c.Param("id"), images)
}

func (h *handler) addImage(c *gin.Context) {
	var req models.AddImageRequest
	if !bind(c, &req) {
		return
	}
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	images, err := h.svc.AddImage(ctx, c.Param("id"), req.URL, req.Metadata)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSet(c, http.StatusCreated, c.Param("id"), images)
}

func (h *handler) clearImages(c *gin.Context) {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	if err := h.svc.ClearImages(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) removeImage(c *gin.Context) {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	images, err := h.svc.RemoveImage(ctx, c.Param("id"), c.Param("imageId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSet(c, http.StatusOK, c.Param("id"), images)
}

func (h *handler) moveImage(c *gin.Context) {
	var req models.MoveImageRequest
	if !bind(c, &req) {
		return
	}
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	images, err := h.svc.MoveImage(ctx, c.Param("id"), c.Param("imageId"), *req.Index)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSet(c, http.StatusOK, c.Param("id"), images)
}

func (h *handler) repairImages(c *gin.Context) {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	images, err := h.svc.RepairImages(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSet(c, http.StatusOK, c.Param("id"), images)
}

func (h *handler) validateFile(c *gin.Context) {
	var req models.ValidateFileRequest
	if !bind(c, &req) {
		return
	}
	result := h.svc.ValidateFile(models.FileDescriptor{
		Name:        req.Name,
		ContentType: req.ContentType,
		Size:        req.Size,
	}, req.MaxSizeMB)
	c.JSON(http.StatusOK, result)
}

func (h *handler) validateSet(c *gin.Context) {
	var req models.ValidateSetRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.svc.ValidateSet(req.Images))
}

func (h *handler) probeImage(c *gin.Context) {
	var req models.ProbeRequest
	if !bind(c, &req) {
		return
	}
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	resp, err := h.svc.ProbeImage(ctx, req.URL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) checkImages(c *gin.Context) {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	resp, err := h.svc.CheckImages(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) getMetrics(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, h.metrics.GetMetrics())
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// carouselView positions a carousel at index and reports where next and prev would land
func carouselView(circleID string, view *carousel.Carousel, index int) models.CarouselResponse {
	view.GoTo(index)
	resp := models.CarouselResponse{
		CircleID:    circleID,
		Position:    view.Position(),
		Count:       view.Count(),
		HasMultiple: view.HasMultiple(),
	}
	if img, ok := view.Current(); ok {
		resp.Current = &img
	}

	view.Next()
	resp.NextIndex = view.Position()
	view.GoTo(resp.Position)
	view.Prev()
	resp.PrevIndex = view.Position()
	view.GoTo(resp.Position)
	return resp
}

func respondSet(c *gin.Context, status int, circleID string, images models.ImageSet) {
	c.JSON(status, models.ImageSetResponse{
		CircleID: circleID,
		Images:   images,
		Count:    len(images),
	})
}

// bind decodes the JSON body into req and answers the request itself on failure
func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondStatus(c, http.StatusRequestEntityTooLarge, "request body too large", err)
			return false
		}
		respondStatus(c, http.StatusBadRequest, "invalid request format", err)
		return false
	}
	return true
}

// Middleware and helper functions
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id":         c.GetString("request_id"),
			"method":             c.Request.Method,
			"path":               c.FullPath(),
			"status_code":        c.Writer.Status(),
			"processing_time_ms": time.Since(start).Milliseconds(),
			"ip":                 c.ClientIP(),
		}).Info("Request completed")
	}
}

func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			respondError(c, c.Errors.Last().Err)
		}
	}
}

func determineStatusCode(err error) int {
	// Check if it's a custom app error first
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	// Fallback to context-based errors
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError answers with the status carried by err; AppError messages are shown as-is
func respondError(c *gin.Context, err error) {
	code := determineStatusCode(err)

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message := appErr.Message
		if appErr.Details != "" {
			message = fmt.Sprintf("%s: %s", message, appErr.Details)
		}
		logRequestError(c, code, message, err)
		c.AbortWithStatusJSON(code, models.ErrorResponse{
			Error:   http.StatusText(code),
			Message: message,
		})
		return
	}
	respondStatus(c, code, "request processing failed", err)
}

func respondStatus(c *gin.Context, code int, message string, err error) {
	logRequestError(c, code, message, err)
	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}

func logRequestError(c *gin.Context, code int, message string, err error) {
	entry := logger.WithError(err).WithFields(logrus.Fields{
		"request_id":  c.GetString("request_id"),
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	})
	if code >= http.StatusInternalServerError {
		entry.Error("Request failed")
		return
	}
	entry.Warn("Request rejected")
}
