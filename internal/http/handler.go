package http

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"plate-capture-service/internal/service"
)

type Handler struct {
	captureService   *service.CaptureService
	watchlistService *service.WatchlistService
	log              zerolog.Logger
}

func NewHandler(
	captureService *service.CaptureService,
	watchlistService *service.WatchlistService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		captureService:   captureService,
		watchlistService: watchlistService,
		log:              log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := r.Group("/api/v1")
	{
		public.POST("/captures", h.createCapture)
		public.GET("/captures", h.listCaptures)
		public.GET("/watched-plates", h.listWatchedPlates)
		public.POST("/watched-plates", h.createWatchedPlate)
	}

	// Destructive endpoints sit behind auth when a secret is configured.
	protected := r.Group("/api/v1")
	protected.Use(authMiddleware)
	{
		protected.DELETE("/captures/:id", h.deleteCapture)
		protected.DELETE("/watched-plates/:id", h.deleteWatchedPlate)
	}
}

type createCaptureRequest struct {
	ImageData string `json:"image_data" binding:"required"`
}

type createWatchedPlateRequest struct {
	PlateNumber string  `json:"plate_number" binding:"required"`
	Description *string `json:"description"`
}

func (h *Handler) createCapture(c *gin.Context) {
	var req createCaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("image_data is required"))
		return
	}

	rawImage, err := decodeImagePayload(req.ImageData)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("image_data is not valid base64"))
		return
	}

	rec, err := h.captureService.Ingest(c.Request.Context(), rawImage)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrTranscodeFailed):
			h.log.Error().Err(err).Msg("transcoding engine failed")
			c.JSON(http.StatusBadGateway, errorResponse("failed to process image"))
		default:
			h.log.Error().Err(err).Msg("failed to ingest capture")
			c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
		}
		return
	}

	c.JSON(http.StatusCreated, successResponse(rec))
}

func (h *Handler) listCaptures(c *gin.Context) {
	captures, err := h.captureService.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list captures")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
		return
	}

	c.JSON(http.StatusOK, successResponse(captures))
}

func (h *Handler) deleteCapture(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid capture id"))
		return
	}

	if err := h.captureService.Delete(c.Request.Context(), id); err != nil {
		h.log.Error().Err(err).Int64("capture_id", id).Msg("failed to delete capture")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) listWatchedPlates(c *gin.Context) {
	plates, err := h.watchlistService.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list watched plates")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
		return
	}

	c.JSON(http.StatusOK, successResponse(plates))
}

func (h *Handler) createWatchedPlate(c *gin.Context) {
	var req createWatchedPlateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("plate_number is required"))
		return
	}

	plate, err := h.watchlistService.Add(c.Request.Context(), req.PlateNumber, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrDuplicatePlate):
			c.JSON(http.StatusConflict, errorResponse(err.Error()))
		default:
			h.log.Error().Err(err).Msg("failed to add watched plate")
			c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
		}
		return
	}

	c.JSON(http.StatusCreated, successResponse(plate))
}

func (h *Handler) deleteWatchedPlate(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid watched plate id"))
		return
	}

	if err := h.watchlistService.Remove(c.Request.Context(), id); err != nil {
		h.log.Error().Err(err).Int64("watched_plate_id", id).Msg("failed to remove watched plate")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
		return
	}

	c.Status(http.StatusNoContent)
}

// decodeImagePayload accepts plain base64 or a browser data URL
// ("data:image/jpeg;base64,...").
func decodeImagePayload(payload string) ([]byte, error) {
	if strings.HasPrefix(payload, "data:") {
		if idx := strings.Index(payload, ","); idx >= 0 {
			payload = payload[idx+1:]
		}
	}
	return base64.StdEncoding.DecodeString(payload)
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
