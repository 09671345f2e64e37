package output

import (
	"encoding/json"

	"github.com/ukcalc/personal-finance/internal/domain"
)

// JSONFormatter serializes the report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.TakeHomeReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
