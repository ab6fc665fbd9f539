package needs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validNeedRequest() NeedRequest {
	return NeedRequest{
		DepartmentID: 1,
		AssetTypeID:  2,
		Quantity:     3,
		ReasonDate:   "2025-02-14",
		Status:       "Новая",
	}
}

func TestNeedRequestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(r *NeedRequest)
		wantMissing []string
	}{
		{
			name:   "valid payload",
			mutate: func(r *NeedRequest) {},
		},
		{
			name:        "missing department",
			mutate:      func(r *NeedRequest) { r.DepartmentID = 0 },
			wantMissing: []string{"department_id"},
		},
		{
			name:        "missing asset type",
			mutate:      func(r *NeedRequest) { r.AssetTypeID = 0 },
			wantMissing: []string{"asset_type_id"},
		},
		{
			name:        "zero quantity",
			mutate:      func(r *NeedRequest) { r.Quantity = 0 },
			wantMissing: []string{"quantity"},
		},
		{
			name:        "negative quantity",
			mutate:      func(r *NeedRequest) { r.Quantity = -5 },
			wantMissing: []string{"quantity"},
		},
		{
			name:        "malformed reason date",
			mutate:      func(r *NeedRequest) { r.ReasonDate = "14.02.2025" },
			wantMissing: []string{"reason_date"},
		},
		{
			name:        "blank status",
			mutate:      func(r *NeedRequest) { r.Status = "   " },
			wantMissing: []string{"status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validNeedRequest()
			tt.mutate(&req)

			err := req.Validate()
			if len(tt.wantMissing) == 0 {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantMissing, validationErr.Missing)
		})
	}
}

func TestNeedRequestNoteNormalization(t *testing.T) {
	req := validNeedRequest()
	assert.Nil(t, req.note())

	blank := "   "
	req.Note = &blank
	assert.Nil(t, req.note())

	padded := "  срочно  "
	req.Note = &padded
	note := req.note()
	if assert.NotNil(t, note) {
		assert.Equal(t, "срочно", *note)
	}
}
