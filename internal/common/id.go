package common

import (
	"github.com/google/uuid"
)

// NewExportID generates a unique export correlation ID with the "exp_" prefix
// Format: exp_<uuid>
func NewExportID() string {
	return "exp_" + uuid.New().String()
}
