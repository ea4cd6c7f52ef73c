package postpilot

// ImageResponse represents a complete response from an image generation provider.
type ImageResponse struct {
	Images []GeneratedImage
}

// GeneratedImage represents a single generated image.
type GeneratedImage struct {
	// URL contains the URL to the generated image (if URL format was requested).
	URL string
	// Base64 contains the base64-encoded image data (if Base64 format was requested).
	Base64 string
	// RevisedPrompt contains the prompt that was actually used.
	// DALL-E 3 rewrites prompts for better results.
	RevisedPrompt string
}

// ImageSize represents predefined image dimensions.
type ImageSize string

const (
	ImageSize1024x1024 ImageSize = "1024x1024"
	ImageSize1024x1792 ImageSize = "1024x1792" // Portrait
	ImageSize1792x1024 ImageSize = "1792x1024" // Landscape
)

// ImageQuality specifies the quality level for generated images.
type ImageQuality string

const (
	ImageQualityStandard ImageQuality = "standard"
	ImageQualityHD       ImageQuality = "hd"
)

// ImageOptions contains configuration for an image generation request.
type ImageOptions struct {
	Model   string
	Size    ImageSize
	Quality ImageQuality
	Count   int
}

// ImageOption is a functional option for configuring image requests.
type ImageOption func(*ImageOptions)

// WithImageModel sets the image model to use.
func WithImageModel(model string) ImageOption {
	return func(o *ImageOptions) {
		o.Model = model
	}
}

// WithImageSize sets the image dimensions.
func WithImageSize(size ImageSize) ImageOption {
	return func(o *ImageOptions) {
		o.Size = size
	}
}

// WithImageQuality sets the image quality level.
func WithImageQuality(quality ImageQuality) ImageOption {
	return func(o *ImageOptions) {
		o.Quality = quality
	}
}

// WithImageCount sets the number of images to generate.
func WithImageCount(n int) ImageOption {
	return func(o *ImageOptions) {
		o.Count = n
	}
}

// ApplyImageOptions applies functional options to an ImageOptions struct.
func ApplyImageOptions(opts ...ImageOption) *ImageOptions {
	o := &ImageOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
