package openai

import (
	"context"

	"github.com/openai/openai-go"

	ai "github.com/spetersoncode/postpilot"
)

// GenerateImage generates images from a text prompt using DALL-E.
func (c *Client) GenerateImage(ctx context.Context, prompt string, opts ...ai.ImageOption) (*ai.ImageResponse, error) {
	options := ai.ApplyImageOptions(opts...)

	model := DefaultImageModel
	if options.Model != "" {
		model = options.Model
	}

	params := openai.ImageGenerateParams{
		Model:  openai.ImageModel(model),
		Prompt: prompt,
	}

	size := options.Size
	if size == "" {
		size = ai.ImageSize1024x1024
	}
	params.Size = openai.ImageGenerateParamsSize(size)

	// DALL-E 3 only supports n=1; callers batch for more.
	n := options.Count
	if n <= 0 {
		n = 1
	}
	params.N = openai.Int(int64(n))

	if options.Quality != "" {
		params.Quality = openai.ImageGenerateParamsQuality(options.Quality)
	}

	resp, err := c.client.Images.Generate(ctx, params)
	if err != nil {
		return nil, err
	}

	images := make([]ai.GeneratedImage, len(resp.Data))
	for i, img := range resp.Data {
		images[i] = ai.GeneratedImage{
			URL:           img.URL,
			Base64:        img.B64JSON,
			RevisedPrompt: img.RevisedPrompt,
		}
	}

	return &ai.ImageResponse{Images: images}, nil
}

var _ ai.ImageProvider = (*Client)(nil)
