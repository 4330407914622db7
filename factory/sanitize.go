package factory

import (
	"maps"
	"strings"
)

const (
	glassAlias   = "openai-glass"
	glassTarget  = "openai"
	glassSuffix  = "-glass"
	modelOptsKey = "model"
)

// SanitizeModelID strips the "-glass" suffix from string model ids. Any
// other value is returned unchanged.
func SanitizeModelID(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	return strings.TrimSuffix(s, glassSuffix)
}

// sanitizeOptions returns opts with its model sanitized. When opts carries
// no model it is returned as is; otherwise a shallow copy is returned and
// opts is left untouched.
func sanitizeOptions(opts map[string]any) map[string]any {
	model, ok := opts[modelOptsKey]
	if !ok {
		return opts
	}
	out := maps.Clone(opts)
	out[modelOptsKey] = SanitizeModelID(model)
	return out
}

// resolveAlias maps a provider id to the id whose module serves it.
func resolveAlias(id string) string {
	if id == glassAlias {
		return glassTarget
	}
	return id
}
