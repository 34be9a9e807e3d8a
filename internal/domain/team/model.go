package team

// Team is a club as imported from the football data provider.
type Team struct {
	ID         int64
	Name       string
	ShortName  string
	TLA        string
	Crest      string
	Address    string
	Website    string
	Founded    *int
	ClubColors string
	Venue      string
	Area       string
}
