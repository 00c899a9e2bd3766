package core

import "time"

// Blockchain is the family name the bridge expects in identity requests.
const Blockchain = "eos"

// Account is one on-chain account the bridge exposes for a chain.
type Account struct {
	Name       string `json:"name"`
	Authority  string `json:"authority"`
	PublicKey  string `json:"publicKey"`
	Blockchain string `json:"blockchain"`
	ChainID    string `json:"chainId"`
}

// Identity is what the bridge returns when asked who the user is.
type Identity struct {
	Hash      string    `json:"hash"`
	Name      string    `json:"name"`
	PublicKey string    `json:"publicKey"`
	Accounts  []Account `json:"accounts"`
}

// AccountFor returns the account bound to chainID, if any.
func (i *Identity) AccountFor(chainID string) (Account, bool) {
	if i == nil {
		return Account{}, false
	}
	for _, acc := range i.Accounts {
		if acc.ChainID == chainID {
			return acc, true
		}
	}
	return Account{}, false
}

// AccountRequest scopes an identity request to one chain.
type AccountRequest struct {
	Blockchain string `json:"blockchain"`
	ChainID    string `json:"chainId"`
}

// IdentityRequest is sent to the bridge to obtain an identity.
type IdentityRequest struct {
	Accounts []AccountRequest `json:"accounts"`
}

// SignRequest asks the bridge to sign a serialized transaction.
type SignRequest struct {
	ChainID string  `json:"chainId"`
	Account Account `json:"account"`
	Payload []byte  `json:"payload"`
}

// Session is a host-side login session built from a successful login.
type Session struct {
	ID        string    // Unique session identifier
	AppName   string    // Application that requested the login
	Accounts  []Account // One account per chain, in chain order
	IssuedAt  time.Time // When the session was created
	ExpiresAt time.Time // When the session token stops being valid
}
