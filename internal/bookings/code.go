package bookings

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateBookingCode builds a human-quotable booking reference in the
// form RST-YYYYMMDD-XXXXXX. The suffix alphabet drops lookalike
// characters (0/O, 1/I).
func GenerateBookingCode(now time.Time) (string, error) {
	suffix := make([]byte, 6)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to generate booking code: %w", err)
		}
		suffix[i] = codeAlphabet[n.Int64()]
	}
	return fmt.Sprintf("RST-%s-%s", now.UTC().Format("20060102"), string(suffix)), nil
}
