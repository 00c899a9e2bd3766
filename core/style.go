package core

// Name is the authenticator's display name.
const Name = "Wombat"

const (
	// OnboardingLink is where users without the wallet are sent to install it.
	OnboardingLink = "https://getwombat.io/"

	// RecoveryLink is opened after a failed login.
	RecoveryLink = "https://getwombat.io"
)

// ButtonStyle describes how a host renders the login button.
type ButtonStyle struct {
	Icon       string `json:"icon"`
	Text       string `json:"text"`
	TextColor  string `json:"textColor"`
	Background string `json:"background"`
}

const logo = "data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHZpZXdCb3g9IjAgMCA2NCA2NCI+PGNpcmNsZSBjeD0iMzIiIGN5PSIzMiIgcj0iMzIiIGZpbGw9IiNmZmYiLz48L3N2Zz4="

// Style returns the fixed Wombat button style.
func Style() ButtonStyle {
	return ButtonStyle{
		Icon:       logo,
		Text:       Name,
		TextColor:  "white",
		Background: "#f43e27",
	}
}
