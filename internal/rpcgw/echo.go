package rpcgw

import (
	"context"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protowire"
)

// EchoFullMethod is the demo unary service built into the gateway.
const EchoFullMethod = "/echo.Echo/Echo"

// Echo replies with "Echoing back: <message>". Request and reply are
// single-string-field messages (field 1), encoded and decoded with
// protowire so no generated code is needed.
func Echo(ctx context.Context, payload []byte) ([]byte, error) {
	msg, err := decodeStringField(payload)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return encodeStringField("Echoing back: " + msg), nil
}

func decodeStringField(payload []byte) (string, error) {
	var msg string
	for len(payload) > 0 {
		num, typ, n := protowire.ConsumeTag(payload)
		if n < 0 {
			return "", fmt.Errorf("invalid tag: %v", protowire.ParseError(n))
		}
		payload = payload[n:]

		if num == 1 && typ == protowire.BytesType {
			value, n := protowire.ConsumeString(payload)
			if n < 0 {
				return "", fmt.Errorf("invalid string field: %v", protowire.ParseError(n))
			}
			msg = value
			payload = payload[n:]
			continue
		}

		n = protowire.ConsumeFieldValue(num, typ, payload)
		if n < 0 {
			return "", fmt.Errorf("invalid field %d: %v", num, protowire.ParseError(n))
		}
		payload = payload[n:]
	}
	return msg, nil
}

func encodeStringField(s string) []byte {
	buf := protowire.AppendTag(nil, 1, protowire.BytesType)
	return protowire.AppendString(buf, s)
}
