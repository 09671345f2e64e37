package server

import (
	"net/http"

	"github.com/ukcalc/personal-finance/internal/calculation"
	"github.com/ukcalc/personal-finance/internal/domain"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type taxYearsResponse struct {
	Years   []domain.TaxYear `json:"years"`
	Default domain.TaxYear   `json:"default"`
}

func (s *Server) handleTaxYears(w http.ResponseWriter, r *http.Request) {
	def := s.engine.DefaultYear
	if def == "" {
		def = calculation.DefaultTaxYear()
	}
	writeJSON(w, http.StatusOK, taxYearsResponse{Years: s.engine.Rates.Years(), Default: def})
}

func (s *Server) handleTakeHome(w http.ResponseWriter, r *http.Request) {
	var in domain.TaxInputs
	if err := decodeJSON(r, w, &in); err != nil {
		s.respondError(w, r, err)
		return
	}
	res, err := s.engine.CalculateTaxes(r.Context(), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handle decodes a request of type In, runs calc and writes its result.
func handle[In any, Out any](s *Server, calc func(In) (Out, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		if err := decodeJSON(r, w, &in); err != nil {
			s.respondError(w, r, err)
			return
		}
		out, err := calc(in)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}
