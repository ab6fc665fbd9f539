package needs

import (
	"fmt"
	"strings"
	"time"
)

type NeedRequest struct {
	DepartmentID int     `json:"department_id"`
	AssetTypeID  int     `json:"asset_type_id"`
	Quantity     int     `json:"quantity"`
	ReasonDate   string  `json:"reason_date"`
	Status       string  `json:"status"`
	Note         *string `json:"note"`
}

type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Missing, ", "))
}

func (r *NeedRequest) Validate() error {
	var missing []string

	if r.DepartmentID == 0 {
		missing = append(missing, "department_id")
	}
	if r.AssetTypeID == 0 {
		missing = append(missing, "asset_type_id")
	}
	if r.Quantity <= 0 {
		missing = append(missing, "quantity")
	}
	if _, err := r.reasonDate(); err != nil {
		missing = append(missing, "reason_date")
	}
	if strings.TrimSpace(r.Status) == "" {
		missing = append(missing, "status")
	}

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}

	return nil
}

func (r *NeedRequest) reasonDate() (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(r.ReasonDate))
}

// note returns the trimmed note, collapsing blanks to null.
func (r *NeedRequest) note() *string {
	if r.Note == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.Note)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
