package rpcgw

import "fmt"

// rawCodec passes request and response payloads through the grpc
// client untouched, so frames parsed from the wire can be proxied to
// the backend without knowing their message types.
type rawCodec struct{}

func (rawCodec) Name() string { return "hybrid-raw" }

func (rawCodec) Marshal(v any) ([]byte, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("raw codec: cannot marshal %T", v)
	}
	return b, nil
}

func (rawCodec) Unmarshal(data []byte, v any) error {
	p, ok := v.(*[]byte)
	if !ok {
		return fmt.Errorf("raw codec: cannot unmarshal into %T", v)
	}
	*p = data
	return nil
}
