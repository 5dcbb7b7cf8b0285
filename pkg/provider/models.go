package provider

import "strings"

// Replicate model IDs suited to logo work
const (
	ModelFluxSchnell   = "black-forest-labs/flux-schnell"
	ModelFluxPro       = "black-forest-labs/flux-1.1-pro"
	ModelFluxDev       = "black-forest-labs/flux-dev"
	ModelImagen4       = "google/imagen-4"
	ModelIdeogramTurbo = "ideogram-ai/ideogram-turbo"
	ModelRecraft       = "recraft-ai/recraft-v3"
	ModelRecraftSVG    = "recraft-ai/recraft-v3-svg"
	ModelSDXL          = "stability-ai/sdxl:39ed52f2a78e934b3ba6e2a89f5b1c712de7dfea535525255b1aa35c5565e08b"
)

// GetModelFromAlias returns the model ID for a short alias. Full model IDs
// ("owner/name" or "owner/name:version") pass through unchanged.
func GetModelFromAlias(alias string) string {
	alias = strings.TrimSpace(alias)
	if strings.Contains(alias, "/") {
		return alias
	}
	switch strings.ToLower(alias) {
	case "flux-schnell", "flux", "schnell":
		return ModelFluxSchnell
	case "flux-pro", "pro":
		return ModelFluxPro
	case "flux-dev", "dev":
		return ModelFluxDev
	case "imagen-4", "imagen":
		return ModelImagen4
	case "ideogram", "ideogram-turbo":
		return ModelIdeogramTurbo
	case "recraft":
		return ModelRecraft
	case "recraft-svg", "svg":
		return ModelRecraftSVG
	case "sdxl":
		return ModelSDXL
	default:
		return ModelFluxSchnell
	}
}

// usesAspectRatio reports whether the model takes aspect_ratio rather than width/height
func usesAspectRatio(modelID string) bool {
	switch modelID {
	case ModelFluxSchnell, ModelFluxPro, ModelImagen4, ModelIdeogramTurbo, ModelRecraft, ModelRecraftSVG:
		return true
	}
	return false
}

// acceptsNegativePrompt reports whether the model honours negative_prompt
func acceptsNegativePrompt(modelID string) bool {
	switch modelID {
	case ModelIdeogramTurbo, ModelSDXL, ModelFluxDev:
		return true
	}
	return false
}

// dimensionsFor converts an aspect ratio to pixel dimensions with a 1024px long edge
func dimensionsFor(aspectRatio string) (int, int) {
	switch aspectRatio {
	case "16:9":
		return 1024, 576
	case "9:16":
		return 576, 1024
	case "4:3":
		return 1024, 768
	case "3:4":
		return 768, 1024
	case "3:2":
		return 1024, 683
	case "2:3":
		return 683, 1024
	default:
		return 1024, 1024
	}
}

// buildInputParams builds the prediction input for the model
func buildInputParams(prompt, aspectRatio, negativePrompt, modelID string) map[string]interface{} {
	input := map[string]interface{}{
		"prompt": prompt,
	}

	if usesAspectRatio(modelID) {
		input["aspect_ratio"] = aspectRatio
	} else {
		width, height := dimensionsFor(aspectRatio)
		input["width"] = width
		input["height"] = height
		input["num_outputs"] = 1
	}

	switch modelID {
	case ModelImagen4:
		input["safety_filter_level"] = "block_only_high"
		input["output_format"] = "png"
	case ModelFluxSchnell, ModelFluxPro, ModelFluxDev:
		input["output_format"] = "png"
	}

	if negativePrompt != "" && acceptsNegativePrompt(modelID) {
		input["negative_prompt"] = negativePrompt
	}

	return input
}

// extractOutputURL returns the first image URL from a prediction output
func extractOutputURL(output interface{}) string {
	switch v := output.(type) {
	case []interface{}:
		if len(v) > 0 {
			if url, ok := v[0].(string); ok {
				return url
			}
		}
	case string:
		return v
	}
	return ""
}
