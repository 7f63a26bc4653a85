package engine

import "context"

// Image is the inline image part of a multimodal request.
type Image struct {
	Data     []byte
	MIMEType string
}

// Engine is a multimodal generative-AI provider. Generate makes exactly one
// blocking call with {prompt, image} and returns the raw text response; the
// caller owns deadline enforcement through ctx and all interpretation of the
// returned text.
type Engine interface {
	Name() string
	Generate(ctx context.Context, prompt string, img *Image) (string, error)
}
