package tokenizer

import "github.com/golang-jwt/jwt/v5"

// AccountClaim is the per-chain account carried in a session token
type AccountClaim struct {
	ChainID   string `json:"cid"`
	Name      string `json:"name"`
	Authority string `json:"auth,omitempty"`
	PublicKey string `json:"key"`
}

// SessionClaims combines standard claims with the logged-in accounts
type SessionClaims struct {
	jwt.RegisteredClaims
	AppName  string         `json:"app"`
	Accounts []AccountClaim `json:"accounts"`
}
