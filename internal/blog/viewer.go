package blog

// Viewer identifies who is making a request. The zero value is anonymous.
type Viewer struct {
	UserID   int
	Username string
}

var Anonymous = Viewer{}

func (v Viewer) IsAuthenticated() bool {
	return v.UserID != 0
}

// Is reports whether v is the user with the given id.
func (v Viewer) Is(userID int) bool {
	return v.IsAuthenticated() && v.UserID == userID
}
