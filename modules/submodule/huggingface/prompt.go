package huggingface

import "strings"

// stylePrompts are prepended to the user prompt depending on the requested
// visual style. "normal" means no styling.
var stylePrompts = map[string]string{
	"cinematic": "cinematic, film quality, dramatic lighting, professional, ",
	"anime":     "anime style, vibrant colors, japanese animation, detailed, ",
	"normal":    "",
}

// DefaultNegativePrompt suppresses the usual failure modes of the hosted
// text-to-video models.
const DefaultNegativePrompt = "blurry, low quality, distorted, pixelated, ugly, bad anatomy, deformed, noisy, grainy, watermark, text"

// EnhancePrompt applies the style prefix and baseline quality terms.
func EnhancePrompt(prompt, style string) string {
	enhanced := stylePrompts[strings.ToLower(style)] + prompt

	if !strings.Contains(strings.ToLower(enhanced), "quality") {
		enhanced = "high quality, detailed, " + enhanced
	}

	return enhanced
}
