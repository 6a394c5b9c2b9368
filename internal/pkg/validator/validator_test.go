package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type vehiclePayload struct {
	PlateNumber string `json:"plate_number" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=CAR MOTORCYCLE TRUCK"`
}

func TestValidate_Passes(t *testing.T) {
	fields := Validate(vehiclePayload{PlateNumber: "AB123CD", Type: "CAR"})
	assert.Nil(t, fields)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	fields := Validate(vehiclePayload{Type: "BICYCLE"})

	assert.Equal(t, "is required", fields["plate_number"])
	assert.Equal(t, "must be one of: CAR MOTORCYCLE TRUCK", fields["type"])
	assert.NotContains(t, fields, "PlateNumber")
}
