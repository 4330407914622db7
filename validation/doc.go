// Package validation validates configuration structs, API request bodies
// and CLI input, reporting failures as INVALID_INPUT AppErrors with
// per-field details.
//
// # Struct Tag Validation
//
//	type validateRequest struct {
//	    APIKey string `json:"api_key" validate:"required,max=512"`
//	}
//	err := validation.Validate(req)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("prompt", prompt).OneOf("runtime", runtime, []string{"main", "renderer"})
//	if appErr := v.Validate(); appErr != nil { ... }
package validation
