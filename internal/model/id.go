package model

import (
	"database/sql/driver"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// ID is the identifier type used by the Fizzy schema: a UUIDv7 rendered as a
// 25-character lowercase base36 string. The database stores the raw 16 bytes
// (BINARY(16)); the text form is what appears in URLs and config.
type ID string

const idLen = 25

// NewID generates a new time-ordered ID.
func NewID() ID {
	u := uuid.Must(uuid.NewV7())
	return encodeID(u[:])
}

// ParseID validates the canonical text form.
func ParseID(s string) (ID, error) {
	if len(s) != idLen {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') {
			return "", fmt.Errorf("%w: %q", ErrInvalidID, s)
		}
	}
	return ID(s), nil
}

func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the ID is unset.
func (id ID) IsZero() bool {
	return id == ""
}

// Bytes returns the big-endian 16-byte form stored in the database.
func (id ID) Bytes() ([]byte, error) {
	n, ok := new(big.Int).SetString(string(id), 36)
	if !ok || n.Sign() < 0 || n.BitLen() > 128 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, string(id))
	}
	buf := make([]byte, 16)
	n.FillBytes(buf)
	return buf, nil
}

func encodeID(b []byte) ID {
	n := new(big.Int).SetBytes(b)
	s := n.Text(36)
	for len(s) < idLen {
		s = "0" + s
	}
	return ID(s)
}

// Value implements driver.Valuer so IDs bind as BINARY(16) parameters.
func (id ID) Value() (driver.Value, error) {
	b, err := id.Bytes()
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Scan implements sql.Scanner for BINARY(16) columns.
func (id *ID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*id = ""
		return nil
	case []byte:
		if len(v) != 16 {
			return fmt.Errorf("%w: expected 16 bytes, got %d", ErrInvalidID, len(v))
		}
		*id = encodeID(v)
		return nil
	case string:
		parsed, err := ParseID(v)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidID, src)
	}
}
