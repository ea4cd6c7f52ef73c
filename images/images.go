// Package images generates post imagery from pipeline image prompts.
package images

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	ai "github.com/spetersoncode/postpilot"
)

const maxImagesPerRequest = 5

// Image is one generated image plus bookkeeping for the approval flow.
type Image struct {
	ID            string    `json:"image_id"`
	URL           string    `json:"url,omitempty"`
	Base64        string    `json:"b64_json,omitempty"`
	RevisedPrompt string    `json:"revised_prompt,omitempty"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

// styleDescriptions decorates the pipeline's image prompt with visual
// direction per requested style.
var styleDescriptions = map[string]string{
	"professional":  "professional business setting, clean, modern, corporate, professional photography",
	"abstract":      "abstract concept, creative, artistic, symbolic, modern art",
	"realistic":     "photorealistic, detailed, high quality photography, natural lighting",
	"minimalist":    "minimalist, clean, simple, elegant, white space, modern design",
	"inspirational": "inspiring, motivational, uplifting, positive, visionary",
}

// Service batches image generation against an image-capable provider.
type Service struct {
	provider ai.ImageProvider
	logger   *slog.Logger
	size     ai.ImageSize
	quality  ai.ImageQuality
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for generation events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithSize sets the generated image dimensions.
func WithSize(size ai.ImageSize) Option {
	return func(s *Service) { s.size = size }
}

// WithQuality sets the generation quality tier.
func WithQuality(q ai.ImageQuality) Option {
	return func(s *Service) { s.quality = q }
}

// New creates an image generation service.
func New(provider ai.ImageProvider, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		logger:   slog.Default(),
		size:     ai.ImageSize1024x1024,
		quality:  ai.ImageQualityStandard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildPrompt decorates a theme with style direction and LinkedIn
// imagery requirements.
func BuildPrompt(theme, style string) string {
	desc, ok := styleDescriptions[style]
	if !ok {
		desc = styleDescriptions["professional"]
	}
	return fmt.Sprintf("Professional LinkedIn post image: %s. Style: %s. "+
		"Business appropriate, clean and modern, high resolution, no text or watermarks.", theme, desc)
}

// Generate produces up to count images for the theme. DALL-E 3 accepts
// one image per request, so generation fans out one call per image and
// runs them concurrently. Count is clamped to [1, 5]. Partial failures
// drop the failed image; an error is returned only when every call
// fails.
func (s *Service) Generate(ctx context.Context, theme, style string, count int) ([]Image, error) {
	if count < 1 {
		count = 1
	}
	if count > maxImagesPerRequest {
		count = maxImagesPerRequest
	}

	prompt := BuildPrompt(theme, style)
	s.logger.Info("generating images", "theme", theme, "count", count)

	results := make([]*Image, count)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < count; i++ {
		g.Go(func() error {
			resp, err := s.provider.GenerateImage(gctx, prompt,
				ai.WithImageSize(s.size),
				ai.WithImageQuality(s.quality),
			)
			if err != nil {
				s.logger.Error("image generation call failed", "image", i, "error", err)
				return nil
			}
			if len(resp.Images) == 0 {
				return nil
			}
			img := resp.Images[0]
			results[i] = &Image{
				ID:            uuid.NewString(),
				URL:           img.URL,
				Base64:        img.Base64,
				RevisedPrompt: img.RevisedPrompt,
				Description:   theme,
				CreatedAt:     time.Now(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	images := make([]Image, 0, count)
	for _, img := range results {
		if img != nil {
			images = append(images, *img)
		}
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("images: all %d generation calls failed", count)
	}

	s.logger.Info("image generation complete", "requested", count, "generated", len(images))
	return images, nil
}
