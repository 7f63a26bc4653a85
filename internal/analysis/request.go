package analysis

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	apperrors "go-vastu-analyzer/internal/errors"
)

// PropertyType selects which prompt template the analysis uses.
type PropertyType string

const (
	PropertyResidential PropertyType = "residential"
	PropertyCommercial  PropertyType = "commercial"
)

// AnalysisRequest is the canonical, validated input to the analysis pipeline.
// Both legacy request shapes are adapted into this one before any work
// happens; nothing downstream knows about field-name variants.
type AnalysisRequest struct {
	ImageBytes        []byte
	MIMEType          string
	PropertyType      PropertyType
	EntranceDirection string
	RoomLocations     map[string]string
	Language          string
}

// Validate checks every field the prompt builder needs. It must reject the
// request before any external call is made.
func (r *AnalysisRequest) Validate() error {
	if len(r.ImageBytes) == 0 {
		return apperrors.NewValidationError("Missing required fields in request body.", fmt.Errorf("image data is empty"))
	}
	if strings.TrimSpace(r.MIMEType) == "" {
		return apperrors.NewValidationError("Missing required fields in request body.", fmt.Errorf("mime type is empty"))
	}
	switch r.PropertyType {
	case PropertyResidential, PropertyCommercial:
	default:
		return apperrors.NewValidationError("Missing required fields in request body.",
			fmt.Errorf("unsupported property type %q", r.PropertyType))
	}
	if strings.TrimSpace(r.EntranceDirection) == "" && len(r.RoomLocations) == 0 {
		return apperrors.NewValidationError("Missing required fields in request body.",
			fmt.Errorf("neither entrance direction nor room locations provided"))
	}
	if strings.TrimSpace(r.Language) == "" {
		return apperrors.NewValidationError("Missing required fields in request body.", fmt.Errorf("language is empty"))
	}
	if err := validateImagePayload(r.ImageBytes, r.MIMEType); err != nil {
		return err
	}
	return nil
}

// validateImagePayload decodes the payload to confirm it really is an image
// of the declared media type. Sniffed content type wins over the declaration.
func validateImagePayload(data []byte, declaredMIME string) error {
	detected := http.DetectContentType(data)
	if !strings.HasPrefix(detected, "image/") {
		return apperrors.NewValidationError("The uploaded file is not a supported image.",
			fmt.Errorf("payload sniffed as %s", detected))
	}
	if !strings.EqualFold(strings.TrimSpace(declaredMIME), detected) {
		return apperrors.NewValidationError("The uploaded file is not a supported image.",
			fmt.Errorf("declared %s but payload sniffed as %s", declaredMIME, detected))
	}
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return apperrors.NewValidationError("The uploaded file is not a supported image.",
			fmt.Errorf("image decode: %w", err))
	}
	return nil
}

// DecodeImagePayload decodes a base64 image payload that may be a data URI.
// For a data URI the header/body boundary is the first comma and the media
// type is the ":"…";" segment of the header; missing delimiters fail rather
// than guess.
func DecodeImagePayload(payload, declaredMIME string) ([]byte, string, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, "", apperrors.NewValidationError("Missing required fields in request body.",
			fmt.Errorf("image payload is empty"))
	}

	hintMIME := ""
	if strings.HasPrefix(payload, "data:") {
		idx := strings.IndexByte(payload, ',')
		if idx <= 0 {
			return nil, "", apperrors.NewValidationError("Invalid image data URI.",
				fmt.Errorf("data URI has no comma separator"))
		}
		header := payload[len("data:"):idx] // "<mime>;base64"
		if semi := strings.IndexByte(header, ';'); semi >= 0 {
			hintMIME = header[:semi]
		} else {
			hintMIME = header
		}
		if strings.TrimSpace(hintMIME) == "" {
			return nil, "", apperrors.NewValidationError("Invalid image data URI.",
				fmt.Errorf("data URI header carries no media type"))
		}
		payload = payload[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// URL-safe alphabet is a known client variation.
		raw, err = base64.URLEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", apperrors.NewValidationError("Invalid base64 image data.",
				fmt.Errorf("base64 decode: %w", err))
		}
	}

	mime := strings.TrimSpace(declaredMIME)
	if mime == "" {
		mime = strings.TrimSpace(hintMIME)
	}
	if mime == "" && len(raw) > 0 {
		mime = http.DetectContentType(raw)
	}
	return raw, mime, nil
}
