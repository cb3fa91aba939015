package rpcgw

import (
	"encoding/binary"
	"fmt"
	"io"
)

// gRPC message framing: 1-byte compressed flag, 4-byte big-endian
// payload length, payload.
const frameHeaderSize = 5

const maxFrameSize = 4 * 1024 * 1024

var (
	ErrFrameTooLarge   = fmt.Errorf("grpc frame exceeds %d bytes", maxFrameSize)
	ErrCompressedFrame = fmt.Errorf("compressed grpc frames are not supported")
)

// ReadFrame reads one length-prefixed message from r.
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [frameHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}

	if header[0] != 0 {
		return nil, ErrCompressedFrame
	}

	length := binary.BigEndian.Uint32(header[1:])
	if length > maxFrameSize {
		return nil, ErrFrameTooLarge
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// AppendFrame appends msg to dst as one uncompressed frame.
func AppendFrame(dst, msg []byte) []byte {
	var header [frameHeaderSize]byte
	binary.BigEndian.PutUint32(header[1:], uint32(len(msg)))
	dst = append(dst, header[:]...)
	return append(dst, msg...)
}
