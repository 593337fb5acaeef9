// Package validation provides struct tag validation backed by the
// validator library, with errors surfaced as structured AppErrors.
//
//	type DeclareRequest struct {
//	    LanguageTag string `validate:"required"`
//	}
//	err := validation.ValidateStruct(req)
package validation
