package domain

// Profile is the wallet card: balance plus equipped cosmetics.
// Point is only ever changed by the authority and re-read afterwards.
type Profile struct {
	Nickname  string `json:"nickname"`
	Point     int    `json:"point"`
	Level     string `json:"level"`
	IconSrc   string `json:"iconSrc,omitempty"`
	NickStyle string `json:"nickStyle,omitempty"`
}

// DisplayName falls back to the login id when no nickname is set
func (p Profile) DisplayName(loginID string) string {
	if p.Nickname != "" {
		return p.Nickname
	}
	return loginID
}

// DisplayLevel falls back to MEMBER when the level is empty
func (p Profile) DisplayLevel() string {
	if p.Level != "" {
		return p.Level
	}
	return DefaultLevel
}
