package domain

// DirectoryFields is the print order for office directory tables
var DirectoryFields = FieldList{"Name", "Phone", "Building", "OfficeNum"}

// DirectoryEntry is one person in the office directory.
type DirectoryEntry struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Building  string `json:"building"`
	OfficeNum string `json:"office_num"`
}

// Record converts the entry to a generic record keyed by DirectoryFields
func (e DirectoryEntry) Record() Record {
	return Record{
		"Name":      e.Name,
		"Phone":     e.Phone,
		"Building":  e.Building,
		"OfficeNum": e.OfficeNum,
	}
}

// DirectoryTable converts entries to a Table, keeping order
func DirectoryTable(entries []DirectoryEntry) Table {
	table := make(Table, 0, len(entries))
	for _, e := range entries {
		table = append(table, e.Record())
	}
	return table
}
