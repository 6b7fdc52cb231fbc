package handler

import (
	"strings"

	dErrors "lahu/pkg/domain-errors"
)

// CheckRequest is the body of POST /compatibility.
type CheckRequest struct {
	DonorType     string `json:"donorType"`
	RecipientType string `json:"recipientType"`
}

// Validate checks presence only; the blood type set is enforced by the engine
// so the error can echo the offending value.
func (r *CheckRequest) Validate() error {
	if strings.TrimSpace(r.DonorType) == "" {
		return dErrors.New(dErrors.CodeValidation, "donorType is required")
	}
	if strings.TrimSpace(r.RecipientType) == "" {
		return dErrors.New(dErrors.CodeValidation, "recipientType is required")
	}
	return nil
}
