package schema_registry

import (
	"encoding/binary"
	"fmt"
)

const (
	magicByte  = 0x0
	headerSize = 5
)

// EncodeSchemaID returns the Confluent wire format header for schemaID: a
// zero magic byte followed by the id as a big-endian uint32.
func EncodeSchemaID(schemaID int) []byte {
	buf := make([]byte, headerSize)
	buf[0] = magicByte
	binary.BigEndian.PutUint32(buf[1:], uint32(schemaID)) //nolint:gosec
	return buf
}

// DecodeSchemaID splits a framed message into its schema id and payload.
func DecodeSchemaID(data []byte) (int, []byte, error) {
	if len(data) < headerSize {
		return 0, nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrInvalidWireFormat, len(data), headerSize)
	}
	if data[0] != magicByte {
		return 0, nil, fmt.Errorf("%w: magic byte 0x%x", ErrInvalidWireFormat, data[0])
	}
	return int(binary.BigEndian.Uint32(data[1:headerSize])), data[headerSize:], nil
}
