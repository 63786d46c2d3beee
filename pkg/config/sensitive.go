package config

import "encoding/json"

// SensitiveString is a string that redacts itself when printed or marshaled.
// Use Value() to read the actual secret.
type SensitiveString string

const redacted = "[REDACTED]"

func (s SensitiveString) String() string {
	if s == "" {
		return ""
	}
	return redacted
}

// Value returns the underlying secret value.
func (s SensitiveString) Value() string {
	return string(s)
}

func (s SensitiveString) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SensitiveString) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = SensitiveString(v)
	return nil
}
