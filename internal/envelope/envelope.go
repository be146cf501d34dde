// Package envelope wraps every pipeline output in the {data, meta} shape the
// API returns.
package envelope

import "time"

// Meta carries provenance for an envelope.
type Meta struct {
	CreatedAt       int64  `json:"created_at"`
	LoadedFromCache bool   `json:"loaded_from_cache"`
	Description     string `json:"description,omitempty"`
}

// Envelope is the uniform response body. Data holds a record slice, a
// grouped result or, after a cache round trip, the raw JSON of either.
type Envelope struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

// Now is the clock used to stamp created_at.
var Now = time.Now

// New wraps data in a freshly computed envelope.
func New(data any) *Envelope {
	return &Envelope{
		Data: data,
		Meta: Meta{CreatedAt: Now().Unix()},
	}
}

// Message builds the success envelope returned when the provider reports
// that there is nothing to show.
func Message(text string) *Envelope {
	return New(map[string]string{"message": text})
}
