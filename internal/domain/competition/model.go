package competition

// Competition is a league or cup; the list is small and changes rarely.
type Competition struct {
	ID       int64
	Name     string
	Code     string
	Type     string
	Emblem   string
	AreaName string
	AreaCode string
}
