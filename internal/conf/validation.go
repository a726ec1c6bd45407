package conf

import (
	"fmt"
	"net"
)

func validateAddr(addr string, vPort bool) (*net.TCPAddr, error) {
	if addr == "" {
		return nil, fmt.Errorf("address is required")
	}

	tAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("invalid address '%s': %v", addr, err)
	}

	if vPort {
		if tAddr.Port < 1 || tAddr.Port > 65535 {
			return nil, fmt.Errorf("port must be between 1-65535")
		}
	}

	return tAddr, nil
}
