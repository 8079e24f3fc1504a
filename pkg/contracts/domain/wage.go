package domain

// Field names used by the living wage dataset (wages.csv)
const (
	FieldState             = "State"
	FieldHourlyMinimumWage = "HourlyMinimumWage"
	FieldAnnualLivingWage  = "AnnualLivingWage"
)

// AbbrevFields are the header names accepted for a state abbreviation column
var AbbrevFields = []string{"Abbrev", "Abbreviation", "StateAbbrev", "StateAbbreviation"}

// WageRecord is a typed row of the living wage dataset.
type WageRecord struct {
	State             string  `json:"state" validate:"required"`
	Abbrev            string  `json:"abbrev,omitempty" validate:"omitempty,alpha,max=3"`
	HourlyMinimumWage float64 `json:"hourly_minimum_wage" validate:"gte=0"`
	AnnualLivingWage  float64 `json:"annual_living_wage" validate:"gte=0"`

	// Row is the source record, kept so filtered results print with any FieldList.
	Row Record `json:"-"`
}

// GapSeries holds the three parallel sequences plotted by the wage gap chart.
// All slices have the same length and share an index per state.
type GapSeries struct {
	Abbrevs     []string  `json:"abbrevs"`
	MinimumWage []float64 `json:"minimum_wage"`
	LivingWage  []float64 `json:"living_wage"`
}

// Len returns the number of states in the series
func (s GapSeries) Len() int {
	return len(s.Abbrevs)
}
