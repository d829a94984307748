// Package validation validates request DTOs with struct tags and turns
// failures into INVALID_INPUT application errors. Field names in messages
// follow the json tags.
//
//	type TextRequest struct {
//	    Text *string `json:"text" validate:"required"`
//	}
//	if err := validation.Validate(req); err != nil { ... }
package validation
