package calculation

import (
	"embed"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/internal/domain"
	"github.com/ukcalc/personal-finance/pkg/money"
)

//go:embed data/cpi.json data/rpi.json
var indexFiles embed.FS

// IndexSeries is an annual-average price index.
type IndexSeries struct {
	Index  domain.PriceIndex       `json:"index"`
	Base   string                  `json:"base"`
	Values map[int]decimal.Decimal `json:"values"`
}

// Years returns the years with a value, oldest first.
func (s *IndexSeries) Years() []int {
	years := make([]int, 0, len(s.Values))
	for y := range s.Values {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Value returns the index for year.
func (s *IndexSeries) Value(year int) (decimal.Decimal, error) {
	v, ok := s.Values[year]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s %d", domain.ErrUnknownIndexYear, s.Index, year)
	}
	return v, nil
}

var (
	indexOnce   sync.Once
	indexSeries map[domain.PriceIndex]*IndexSeries
	indexErr    error
)

func loadIndices() (map[domain.PriceIndex]*IndexSeries, error) {
	indexOnce.Do(func() {
		indexSeries = make(map[domain.PriceIndex]*IndexSeries)
		for _, idx := range []domain.PriceIndex{domain.IndexCPI, domain.IndexRPI} {
			data, err := indexFiles.ReadFile("data/" + string(idx) + ".json")
			if err != nil {
				indexErr = fmt.Errorf("failed to read %s data: %w", idx, err)
				return
			}
			var series IndexSeries
			if err := json.Unmarshal(data, &series); err != nil {
				indexErr = fmt.Errorf("failed to parse %s data: %w", idx, err)
				return
			}
			indexSeries[idx] = &series
		}
	})
	return indexSeries, indexErr
}

// LoadIndex returns the embedded series for index.
func LoadIndex(index domain.PriceIndex) (*IndexSeries, error) {
	all, err := loadIndices()
	if err != nil {
		return nil, err
	}
	series, ok := all[index]
	if !ok {
		return nil, domain.NewValidationError("index", fmt.Errorf("%w: unknown index %q", domain.ErrInvalidInput, index))
	}
	return series, nil
}

// AdjustForInflation restates an amount from one year's prices in another's.
func AdjustForInflation(in domain.InflationInputs) (*domain.InflationResult, error) {
	if in.Amount.IsNegative() {
		return nil, domain.NewValidationError("amount", domain.ErrInvalidInput)
	}
	index := in.Index
	if index == "" {
		index = domain.IndexCPI
	}
	series, err := LoadIndex(index)
	if err != nil {
		return nil, domain.NewValidationError("index", err)
	}
	from, err := series.Value(in.FromYear)
	if err != nil {
		return nil, domain.NewValidationError("from_year", err)
	}
	to, err := series.Value(in.ToYear)
	if err != nil {
		return nil, domain.NewValidationError("to_year", err)
	}

	ratio := to.Div(from)
	res := &domain.InflationResult{
		Index:               index,
		FromYear:            in.FromYear,
		ToYear:              in.ToYear,
		OriginalAmount:      in.Amount,
		AdjustedAmount:      money.RoundPenny(in.Amount.Mul(ratio)),
		FromIndex:           from,
		ToIndex:             to,
		CumulativeInflation: money.AsPercent(ratio.Sub(decimal.NewFromInt(1))).Round(2),
		AnnualisedInflation: decimal.Zero,
	}
	if years := in.ToYear - in.FromYear; years != 0 {
		annual := math.Pow(ratio.InexactFloat64(), 1/float64(years)) - 1
		res.AnnualisedInflation = money.AsPercent(decimal.NewFromFloat(annual)).Round(2)
	}
	return res, nil
}
