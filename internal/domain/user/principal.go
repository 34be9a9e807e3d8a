package user

// Principal is the verified caller attached to a request.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == "admin"
}
