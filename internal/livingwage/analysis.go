package livingwage

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	apperrors "livingwage/internal/errors"
	"livingwage/pkg/contracts/domain"
)

const (
	// FederalMinimumWage is the federal hourly floor in dollars
	FederalMinimumWage = 7.25

	// TopExpensiveStates is the default result size for ExpensiveStates
	TopExpensiveStates = 5

	hoursPerWeek = 40
	weeksPerYear = 52
	earners      = 2
)

var (
	// ErrStateNotFound is wrapped by the NOT_FOUND error from StateLivingWage
	ErrStateNotFound = errors.New("state not found")

	// ErrAmbiguousState is wrapped by the AMBIGUOUS error from StateLivingWage
	ErrAmbiguousState = errors.New("state matches more than one record")
)

// foldKey normalizes a state name for matching. A Caser is not safe for
// concurrent use, so one is created per call.
func foldKey(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}

// FindState returns the single record whose State or Abbrev matches state,
// ignoring case and surrounding spaces.
func FindState(state string, records []domain.WageRecord) (domain.WageRecord, error) {
	key := foldKey(state)
	resource := fmt.Sprintf("state %q", state)

	var matches []int
	for i, rec := range records {
		if key != "" && (foldKey(rec.State) == key || foldKey(rec.Abbrev) == key) {
			matches = append(matches, i)
		}
	}

	switch len(matches) {
	case 0:
		return domain.WageRecord{}, apperrors.NewNotFoundError(resource, ErrStateNotFound).
			WithContext("state", state)
	case 1:
		return records[matches[0]], nil
	default:
		states := make([]string, 0, len(matches))
		for _, i := range matches {
			states = append(states, records[i].State)
		}
		return domain.WageRecord{}, apperrors.NewAmbiguousError(resource, len(matches), ErrAmbiguousState).
			WithContext("state", state).
			WithContext("candidates", states)
	}
}

// StateLivingWage returns the annual living wage of the state named by its
// name or abbreviation.
func StateLivingWage(state string, records []domain.WageRecord) (float64, error) {
	rec, err := FindState(state, records)
	if err != nil {
		return 0, err
	}
	return rec.AnnualLivingWage, nil
}

// LowWageStates returns the records whose hourly minimum wage is the federal floor
func LowWageStates(records []domain.WageRecord) []domain.WageRecord {
	out := []domain.WageRecord{}
	for _, rec := range records {
		if rec.HourlyMinimumWage == FederalMinimumWage {
			out = append(out, rec)
		}
	}
	return out
}

// ExpensiveStates returns the names of the n states with the highest annual
// living wage, highest first. Equal wages keep their input order.
func ExpensiveStates(records []domain.WageRecord, n int) []string {
	if n <= 0 {
		return []string{}
	}

	sorted := make([]domain.WageRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AnnualLivingWage > sorted[j].AnnualLivingWage
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	names := make([]string, 0, n)
	for _, rec := range sorted[:n] {
		names = append(names, rec.State)
	}
	return names
}

// AnnualWage is the yearly income of a two-earner household where both work
// full time at the given hourly wage.
func AnnualWage(hourly float64) float64 {
	return hourly * hoursPerWeek * weeksPerYear * earners
}

// Gap is how far two-earner minimum wage income falls short of the living wage.
// It is negative when minimum wage income covers the living wage.
func Gap(rec domain.WageRecord) float64 {
	return rec.AnnualLivingWage - AnnualWage(rec.HourlyMinimumWage)
}

// GapStates returns the records where two-earner minimum wage income is
// strictly below the annual living wage.
func GapStates(records []domain.WageRecord) []domain.WageRecord {
	out := []domain.WageRecord{}
	for _, rec := range records {
		if AnnualWage(rec.HourlyMinimumWage) < rec.AnnualLivingWage {
			out = append(out, rec)
		}
	}
	return out
}

// LargestGaps returns the n gap states with the largest shortfall, largest first.
// Equal gaps keep their input order.
func LargestGaps(records []domain.WageRecord, n int) []domain.WageRecord {
	gaps := GapStates(records)
	sort.SliceStable(gaps, func(i, j int) bool {
		return Gap(gaps[i]) > Gap(gaps[j])
	})
	if n >= 0 && n < len(gaps) {
		gaps = gaps[:n]
	}
	return gaps
}

// Rows converts records back to their source rows for printing
func Rows(records []domain.WageRecord) domain.Table {
	table := make(domain.Table, 0, len(records))
	for _, rec := range records {
		if rec.Row != nil {
			table = append(table, rec.Row)
			continue
		}
		table = append(table, domain.Record{
			domain.FieldState:             rec.State,
			domain.FieldHourlyMinimumWage: rec.HourlyMinimumWage,
			domain.FieldAnnualLivingWage:  rec.AnnualLivingWage,
		})
	}
	return table
}
