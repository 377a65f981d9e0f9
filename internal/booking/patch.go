package booking

import (
	"bytes"
	"encoding/json"
)

// OptionalString tells an absent JSON field apart from an explicit null.
// Set is true whenever the key was present; Value is nil for null.
type OptionalString struct {
	Set   bool
	Value *string
}

// Present builds an OptionalString carrying v
func Present(v string) OptionalString {
	return OptionalString{Set: true, Value: &v}
}

// Null builds an OptionalString that clears the field
func Null() OptionalString {
	return OptionalString{Set: true}
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// PatchInput is a partial booking update. A nil Status means no change.
type PatchInput struct {
	Status       *string        `json:"status"`
	ProviderNote OptionalString `json:"providerNote"`
	UserNote     OptionalString `json:"userNote"`
}
