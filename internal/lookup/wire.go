package lookup

import (
	"encoding/json"
	"fmt"
)

// flexString accepts a JSON string or number; providers are not consistent
// about which they return for the envelope code.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	return fmt.Errorf("code is neither string nor number: %s", string(b))
}

// wireEnvelope is the provider's response envelope.
type wireEnvelope struct {
	Code    flexString `json:"code"`
	Message string     `json:"message"`
	Data    *wireData  `json:"data"`
}

// wireData is the nested payload carrying the registration details.
type wireData struct {
	DomainStatus   string `json:"domain_status"`
	ExpirationTime string `json:"expiration_time"`
}
