package tabledata

import (
	apperrors "livingwage/internal/errors"
	"livingwage/pkg/contracts/domain"
)

// SampleDirectory returns the example office directory. Each call builds a new
// slice, so callers may modify the result freely.
func SampleDirectory() []domain.DirectoryEntry {
	return []domain.DirectoryEntry{
		{Name: "Fox, Susan", Phone: "6553", Building: "Olin-Rice", OfficeNum: "230"},
		{Name: "Cranford, James", Phone: "2083", Building: "Olin-Rice", OfficeNum: "143"},
		{Name: "Syed, Una", Phone: "1059", Building: "Campus Center", OfficeNum: "399"},
		{Name: "Thimus, Reg", Phone: "9989", Building: "Leonard", OfficeNum: "22"},
		{Name: "Warner, Elen", Phone: "1113", Building: "Old Main", OfficeNum: "402"},
		{Name: "Best, Fleur", Phone: "9281", Building: "Carnegie", OfficeNum: "003"},
		{Name: "Ryan, Frazer", Phone: "1923", Building: "Old Main", OfficeNum: "281"},
		{Name: "Mueller, Marcel", Phone: "9011", Building: "Leonard", OfficeNum: "234"},
		{Name: "Glover, Stephanie", Phone: "2341", Building: "Carnegie", OfficeNum: "832"},
		{Name: "Glass, Abdullah", Phone: "1122", Building: "77 Mac", OfficeNum: "102"},
		{Name: "Petersen, Rosa", Phone: "2392", Building: "Olin-Rice", OfficeNum: "333"},
		{Name: "Mora, Mohamed", Phone: "2229", Building: "Campus Center", OfficeNum: "012"},
		{Name: "Friedman, Maryam", Phone: "3142", Building: "Old Main", OfficeNum: "194"},
		{Name: "Li, Elena", Phone: "1923", Building: "Olin-Rice", OfficeNum: "119"},
	}
}

// LookupPhone returns the phone number of the first entry with the exact name.
// A missing name is a NOT_FOUND error whose message reads "No entry: <name>".
func LookupPhone(name string, dir []domain.DirectoryEntry) (string, error) {
	for _, e := range dir {
		if e.Name == name {
			return e.Phone, nil
		}
	}
	return "", apperrors.NewAppError(apperrors.ErrTypeNotFound, "No entry: "+name, nil).
		WithContext("name", name)
}

// CollectByBuilding returns the entries located in building, in directory order
func CollectByBuilding(building string, dir []domain.DirectoryEntry) []domain.DirectoryEntry {
	out := []domain.DirectoryEntry{}
	for _, e := range dir {
		if e.Building == building {
			out = append(out, e)
		}
	}
	return out
}
