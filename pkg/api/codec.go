package api

import (
	"encoding/json"
	"fmt"
)

// CodecName is registered under Connect's "json" slot, so requests with
// application/json (unary) or application/connect+json (streaming) reach it.
const CodecName = "json"

// Codec marshals the plain Go messages in this package for Connect.
type Codec struct{}

func (Codec) Name() string { return CodecName }

func (Codec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

func (Codec) Unmarshal(data []byte, msg any) error {
	// Connect sends an empty body for messages without fields.
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}
