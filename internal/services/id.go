package services

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

// Identifier prefixes keep IDs self-describing in logs and URLs.
const (
	OrderIDPrefix   = "ord_"
	ItemIDPrefix    = "itm_"
	ContactIDPrefix = "ctc_"
)

// IDGenerator mints a prefixed unique identifier.
type IDGenerator func(prefix string) string

// NewULID is the default IDGenerator: a lowercase ULID behind the prefix,
// so IDs sort by creation time.
func NewULID(prefix string) string {
	return prefix + strings.ToLower(ulid.Make().String())
}
