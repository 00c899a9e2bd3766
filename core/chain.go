package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// RPCEndpoint is one RPC access point of a chain.
type RPCEndpoint struct {
	Protocol string `json:"protocol" mapstructure:"protocol"`
	Host     string `json:"host" mapstructure:"host"`
	Port     int    `json:"port" mapstructure:"port"`
}

// URL returns the endpoint as protocol://host:port.
func (e RPCEndpoint) URL() string {
	return e.Protocol + "://" + e.Host + ":" + strconv.Itoa(e.Port)
}

// Validate checks the endpoint is usable.
func (e RPCEndpoint) Validate() error {
	switch e.Protocol {
	case "http", "https":
	default:
		return fmt.Errorf("protocol %q: %w", e.Protocol, ErrInvalidEndpoint)
	}
	if e.Host == "" {
		return fmt.Errorf("host: cannot be empty: %w", ErrInvalidEndpoint)
	}
	if e.Port <= 0 || e.Port > 65535 {
		return fmt.Errorf("port %d: out of range: %w", e.Port, ErrInvalidEndpoint)
	}
	return nil
}

// Chain identifies a target network and where to reach it.
type Chain struct {
	ChainID      string        `json:"chain_id" mapstructure:"chain_id"`
	RPCEndpoints []RPCEndpoint `json:"rpc_endpoints" mapstructure:"rpc_endpoints"`
}

// Validate checks that the chain id is hex encoded and that every endpoint is usable.
func (c Chain) Validate() error {
	if c.ChainID == "" {
		return fmt.Errorf("chainId: cannot be empty: %w", ErrInvalidChain)
	}
	if _, err := hexutil.Decode("0x" + strings.TrimPrefix(c.ChainID, "0x")); err != nil {
		return fmt.Errorf("chainId %q: %v: %w", c.ChainID, err, ErrInvalidChain)
	}
	if len(c.RPCEndpoints) == 0 {
		return fmt.Errorf("chain %s: no rpc endpoints: %w", c.ChainID, ErrInvalidChain)
	}
	for i, ep := range c.RPCEndpoints {
		if err := ep.Validate(); err != nil {
			return fmt.Errorf("chain %s endpoint %d: %w", c.ChainID, i, err)
		}
	}
	return nil
}
