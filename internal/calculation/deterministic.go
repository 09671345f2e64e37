package calculation

import (
	"time"

	"github.com/ukcalc/personal-finance/internal/domain"
	"github.com/ukcalc/personal-finance/pkg/dateutil"
)

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// DefaultTaxYear is the tax year containing today when it has a rate table,
// otherwise the latest supported year.
func DefaultTaxYear() domain.TaxYear {
	current := domain.TaxYear(dateutil.TaxYearLabel(dateutil.TaxYearOf(nowFunc())))
	if current.IsSupported() {
		return current
	}
	return domain.LatestTaxYear
}
