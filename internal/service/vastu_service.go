package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-vastu-analyzer/internal/analysis"
	"go-vastu-analyzer/internal/engine"
	apperrors "go-vastu-analyzer/internal/errors"
	"go-vastu-analyzer/internal/logger"
	"go-vastu-analyzer/internal/storage"

	"github.com/sirupsen/logrus"
)

// VastuService runs the analysis pipeline: validate, build the prompt,
// invoke the AI engine exactly once, normalize the response.
type VastuService interface {
	Analyze(ctx context.Context, req analysis.AnalysisRequest) (*analysis.VastuReport, error)
	Translate(ctx context.Context, report *analysis.VastuReport, language string) (*analysis.VastuReport, error)
}

type vastuService struct {
	engine          engine.Engine
	archiver        storage.Archiver
	analysisTimeout time.Duration
}

// NewVastuService creates a new Vastu analysis service
func NewVastuService(eng engine.Engine, archiver storage.Archiver, analysisTimeout time.Duration) VastuService {
	return &vastuService{
		engine:          eng,
		archiver:        archiver,
		analysisTimeout: analysisTimeout,
	}
}

func (s *vastuService) Analyze(ctx context.Context, req analysis.AnalysisRequest) (*analysis.VastuReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt := analysis.BuildAnalysisPrompt(req)
	raw, err := s.invoke(ctx, prompt, &engine.Image{Data: req.ImageBytes, MIMEType: req.MIMEType})
	if err != nil {
		return nil, err
	}

	report, err := analysis.NormalizeReport(raw, req.PropertyType)
	if err != nil {
		return nil, err
	}

	s.archive(req.ImageBytes, req.MIMEType)
	return report, nil
}

func (s *vastuService) Translate(ctx context.Context, report *analysis.VastuReport, language string) (*analysis.VastuReport, error) {
	if report == nil || strings.TrimSpace(report.OverallSummary) == "" {
		return nil, apperrors.NewValidationError("Missing report to translate.",
			errors.New("translate called without a report"))
	}
	if strings.TrimSpace(language) == "" {
		return nil, apperrors.NewValidationError("Missing target language.",
			errors.New("translate called without a language"))
	}

	prompt := analysis.BuildTranslationPrompt(report, language)
	raw, err := s.invoke(ctx, prompt, nil)
	if err != nil {
		return nil, err
	}

	// The translated report must survive the same shape validation as a
	// fresh analysis. IsFloorPlan is fixed by the prompt, so any property
	// type works for the fallback message here.
	translated, err := analysis.NormalizeReport(raw, analysis.PropertyResidential)
	if err != nil {
		return nil, err
	}
	if len(translated.Doshas) != len(report.Doshas) {
		return nil, apperrors.NewResponseError("Failed to translate Vastu analysis.",
			errors.New("translation changed the number of doshas"))
	}
	return translated, nil
}

// invoke makes the single external call, bounded by the analysis timeout.
func (s *vastuService) invoke(ctx context.Context, prompt string, img *engine.Image) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.analysisTimeout)
	defer cancel()

	start := time.Now()
	raw, err := s.engine.Generate(callCtx, prompt, img)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded {
			return "", apperrors.NewTimeoutError("Failed to generate Vastu analysis.", err)
		}
		return "", apperrors.NewUpstreamError("Failed to generate Vastu analysis.", err)
	}

	logger.WithFields(logrus.Fields{
		"engine":      s.engine.Name(),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("AI invocation completed")
	return raw, nil
}

// archive stores a copy of the submitted floor plan. Detached from the
// request: failures are logged, never surfaced.
func (s *vastuService) archive(data []byte, mimeType string) {
	if s.archiver == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.archiver.Archive(ctx, data, mimeType); err != nil {
			logger.WithError(err).Warn("Floor plan archival failed")
		}
	}()
}
