package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/ltejedor/aihacks/core"
)

// Key prefixes for different data types
const (
	rowPrefix     = "resrow"
	rowDatePrefix = "resrowd"
)

// makeRowKey generates a key for a resource row by ID.
func makeRowKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", rowPrefix, id))
}

// makeRowDateKey generates a composite key for the date index.
// Format: prefix:date:id. Dates are ISO 8601 strings, so raw bytes sort
// chronologically; the ID suffix is BigEndian for the same reason.
func makeRowDateKey(date string, id core.ID) []byte {
	prefix := rowDatePrefix + ":"
	buf := make([]byte, len(prefix)+len(date)+1+8)
	offset := copy(buf, prefix)
	offset += copy(buf[offset:], date)
	buf[offset] = ':'
	offset++
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialRowDateKey generates a partial key for date range queries.
// Format: prefix:date
func makePartialRowDateKey(date string) []byte {
	prefix := rowDatePrefix + ":"
	buf := make([]byte, len(prefix)+len(date))
	offset := copy(buf, prefix)
	copy(buf[offset:], date)
	return buf
}
