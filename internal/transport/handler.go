package transport

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-vastu-analyzer/internal/analysis"
	"go-vastu-analyzer/internal/config"
	apperrors "go-vastu-analyzer/internal/errors"
	"go-vastu-analyzer/internal/logger"
	"go-vastu-analyzer/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// analyzeRequest accepts both historical field conventions for the analyze
// operation: the flat base64 shape (base64Image/mimeType/entranceDirection/
// propertyType) and the data-URI room-location shape (image/language/
// propertyFacing plus per-room fields). toAnalysisRequest folds either into
// the one canonical AnalysisRequest; the pipeline itself never branches on
// the wire shape.
type analyzeRequest struct {
	Base64Image       string `json:"base64Image"`
	MIMEType          string `json:"mimeType"`
	EntranceDirection string `json:"entranceDirection"`
	PropertyType      string `json:"propertyType"`

	Image          string `json:"image"`
	Language       string `json:"language"`
	PropertyFacing string `json:"propertyFacing"`
	MainEntrance   string `json:"mainEntrance"`
	Kitchen        string `json:"kitchen"`
	MasterBedroom  string `json:"masterBedroom"`
	PoojaRoom      string `json:"poojaRoom"`
	Toilets        string `json:"toilets"`
	Staircase      string `json:"staircase"`
}

type translateRequest struct {
	Report   *analysis.VastuReport `json:"report"`
	Language string                `json:"language"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (r *analyzeRequest) toAnalysisRequest() (analysis.AnalysisRequest, error) {
	payload := r.Base64Image
	if payload == "" {
		payload = r.Image
	}
	if strings.TrimSpace(payload) == "" {
		return analysis.AnalysisRequest{}, apperrors.NewValidationError(
			"Missing required fields in request body.", fmt.Errorf("no image field present"))
	}
	// The flat shape always declared its media type; only the data-URI shape
	// may leave it to the URI header.
	if r.Base64Image != "" && strings.TrimSpace(r.MIMEType) == "" {
		return analysis.AnalysisRequest{}, apperrors.NewValidationError(
			"Missing required fields in request body.", fmt.Errorf("mimeType not declared for base64 image"))
	}

	imageBytes, mimeType, err := analysis.DecodeImagePayload(payload, r.MIMEType)
	if err != nil {
		return analysis.AnalysisRequest{}, err
	}

	rooms := map[string]string{}
	for name, location := range map[string]string{
		"main entrance":  r.MainEntrance,
		"kitchen":        r.Kitchen,
		"master bedroom": r.MasterBedroom,
		"pooja room":     r.PoojaRoom,
		"toilets":        r.Toilets,
		"staircase":      r.Staircase,
	} {
		if strings.TrimSpace(location) != "" {
			rooms[name] = strings.TrimSpace(location)
		}
	}

	propertyType := strings.ToLower(strings.TrimSpace(r.PropertyType))
	if propertyType == "" && len(rooms) > 0 {
		// The room-location shape never carried a property type; it was
		// only ever used for homes.
		propertyType = string(analysis.PropertyResidential)
	}

	direction := strings.TrimSpace(r.EntranceDirection)
	if direction == "" {
		direction = strings.TrimSpace(r.PropertyFacing)
	}

	language := strings.TrimSpace(r.Language)
	if language == "" {
		language = "English"
	}

	return analysis.AnalysisRequest{
		ImageBytes:        imageBytes,
		MIMEType:          mimeType,
		PropertyType:      analysis.PropertyType(propertyType),
		EntranceDirection: direction,
		RoomLocations:     rooms,
		Language:          language,
	}, nil
}

// NewHandler builds the HTTP routing for the analysis API.
func NewHandler(svc service.VastuService, cfg *config.Config) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestSizeLimiter(cfg.MaxRequestBodySize))

	// The analyze contract promises 405, not gin's default 404, on a wrong
	// method.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "Method Not Allowed"})
	})

	r.GET("/health", healthCheck)
	r.POST("/api/analyze", analyzeFloorPlan(svc))
	r.POST("/api/translate", translateReport(svc))

	return r
}

func analyzeFloorPlan(svc service.VastuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		var req analyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperrors.NewValidationError("Invalid JSON request body.", err))
			return
		}

		analysisReq, err := req.toAnalysisRequest()
		if err != nil {
			respondError(c, err)
			return
		}

		report, err := svc.Analyze(c.Request.Context(), analysisReq)
		if err != nil {
			respondError(c, err)
			return
		}

		logger.WithFields(logrus.Fields{
			"property_type":      analysisReq.PropertyType,
			"language":           analysisReq.Language,
			"doshas":             len(report.Doshas),
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Vastu analysis completed successfully")

		c.JSON(http.StatusOK, report)
	}
}

func translateReport(svc service.VastuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req translateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperrors.NewValidationError("Invalid JSON request body.", err))
			return
		}

		translated, err := svc.Translate(c.Request.Context(), req.Report, req.Language)
		if err != nil {
			respondError(c, err)
			return
		}

		logger.WithFields(logrus.Fields{
			"language": req.Language,
			"doshas":   len(translated.Doshas),
		}).Info("Vastu report translated successfully")

		c.JSON(http.StatusOK, translated)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// respondError converts a pipeline error into the client contract: the
// status from the error kind and a short message with no internal detail.
// The underlying cause is logged here and only here.
func respondError(c *gin.Context, err error) {
	code := apperrors.GetStatusCode(err)

	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   apperrors.ClientMessage(err),
		Message: http.StatusText(code),
	})
}
