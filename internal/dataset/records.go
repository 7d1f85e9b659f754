package dataset

// Record is one raw row before parsing and enrichment.
type Record struct {
	Month      string
	Country    string
	Profession string
	Age        int
	HairColor  string
	Source     string
	Venue      string
	Kissed     string
	Outcome    string
}

// SampleRecords returns the 2025 dataset rendered by the dashboard.
// A fresh slice is returned on every call.
func SampleRecords() []Record {
	return []Record{
		{Month: "January", Country: "Turkey", Profession: "Engineer", Age: 25, HairColor: "Brown", Source: "Recycled", Venue: "N/A", Kissed: "Yes", Outcome: "Acquaintances"},
		{Month: "January", Country: "Germany", Profession: "Architect", Age: 22, HairColor: "Blonde", Source: "Recycled", Venue: "N/A", Kissed: "Yes", Outcome: "Friends"},
		{Month: "February", Country: "Brazil", Profession: "Engineer", Age: 27, HairColor: "Brown", Source: "New", Venue: "Café", Kissed: "No", Outcome: "Acquaintances"},
		{Month: "February", Country: "Brazil", Profession: "Nutrition", Age: 22, HairColor: "Blonde", Source: "New", Venue: "Café", Kissed: "No", Outcome: "Acquaintances"},
		{Month: "March", Country: "Brazil", Profession: "Physiotherapy", Age: 24, HairColor: "Brown", Source: "Recycled", Venue: "N/A", Kissed: "Yes", Outcome: "Friends"},
		{Month: "July", Country: "Brazil", Profession: "Lawyer", Age: 25, HairColor: "Brown", Source: "New", Venue: "Park", Kissed: "Yes", Outcome: "Ghosting"},
		{Month: "August", Country: "Brazil", Profession: "Journalist", Age: 24, HairColor: "Brown", Source: "New", Venue: "Concert", Kissed: "No", Outcome: "Friends"},
		{Month: "December", Country: "Brazil", Profession: "Engineer", Age: 20, HairColor: "Brown", Source: "New", Venue: "Park", Kissed: "Yes", Outcome: "Acquaintances"},
	}
}
