package domain

// Owner represents a team member. Read-only.
type Owner struct {
	ID        string
	Name      string
	AvatarURL string // optional
}

// StatusColor is one entry of the color-configuration table: a status name
// and its display color. The hex value is normalized with a leading "#"
// when the table omits it.
type StatusColor struct {
	Status string
	Hex    string
}
