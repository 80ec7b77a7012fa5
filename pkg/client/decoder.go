package client

import (
	"encoding/json"
	"io"
)

// Decoder deserializes a response body into v.
type Decoder interface {
	Decode(r io.Reader, v any) error
}

// JSONDecoder streams JSON bodies. Unknown fields are ignored since the API
// returns far more than the modeled subset.
type JSONDecoder struct{}

// Decode implements Decoder.
func (JSONDecoder) Decode(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}
