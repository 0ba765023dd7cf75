package model

import (
	"encoding/json"
	"time"
)

// Variant selects how a notification is presented by the client.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a transient, user-visible message (a toast on the client).
type Notification struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Variant     Variant       `json:"variant,omitempty"`
	Duration    time.Duration `json:"-"`
}

// MarshalJSON renders Duration as whole milliseconds under "duration".
func (n Notification) MarshalJSON() ([]byte, error) {
	type alias Notification
	return json.Marshal(struct {
		alias
		Duration int64 `json:"duration"`
	}{alias: alias(n), Duration: n.Duration.Milliseconds()})
}

// UnmarshalJSON reads "duration" as milliseconds.
func (n *Notification) UnmarshalJSON(b []byte) error {
	type alias Notification
	aux := struct {
		*alias
		Duration int64 `json:"duration"`
	}{alias: (*alias)(n)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	n.Duration = time.Duration(aux.Duration) * time.Millisecond
	return nil
}
