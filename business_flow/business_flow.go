package businessflow

import (
	"strings"
)

// ClientMetadata holds what the transport layer knows about the caller
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID for correlation
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// Proxy headers consulted for the client address, highest priority first
var clientIPHeaders = []string{
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// ResolveClientIP picks the caller address from proxy headers, falling back
// to the connection's remote address. Only the first X-Forwarded-For hop is used.
func ResolveClientIP(header func(string) string, remoteAddr string) string {
	for _, name := range clientIPHeaders {
		value := strings.TrimSpace(header(name))
		if value == "" {
			continue
		}
		if name == "X-Forwarded-For" {
			first, _, _ := strings.Cut(value, ",")
			value = strings.TrimSpace(first)
			if value == "" {
				continue
			}
		}
		return value
	}
	return remoteAddr
}
