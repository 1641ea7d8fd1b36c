package checkout

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hyun090116/vortex-game-explorer/internal/cart"
)

const orderIDPrefix = "VORTEX"

// NewOrderID builds the provider-facing order identifier:
// VORTEX-<unix-millis>-<nine base36 chars>.
func NewOrderID(now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", orderIDPrefix, now.UnixMilli(), randomBase36(9))
}

// NewTransactionID builds the per-line settlement identifier recorded on each
// purchase row.
func NewTransactionID(now time.Time, line int) string {
	return fmt.Sprintf("TXN-%d-%d-%s", now.UnixMilli(), line, randomBase36(4))
}

// BuildOrderName renders the display name the provider shows the payer:
// the first title alone, or "<first> 외 <N-1>건" for multi-item orders.
func BuildOrderName(items []cart.Item) string {
	if len(items) == 0 {
		return ""
	}
	first := items[0].Title
	if len(items) == 1 {
		return first
	}
	return fmt.Sprintf("%s 외 %d건", first, len(items)-1)
}

func randomBase36(length int) string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Only reachable when the OS entropy source is unavailable; a
		// nanosecond timestamp still yields a usable opaque suffix.
		binary.BigEndian.PutUint64(buf[:], uint64(time.Now().UnixNano()))
	}
	n := binary.BigEndian.Uint64(buf[:])
	encoded := strconv.FormatUint(n, 36)
	if len(encoded) < length {
		encoded = strings.Repeat("0", length-len(encoded)) + encoded
	}
	return encoded[:length]
}
