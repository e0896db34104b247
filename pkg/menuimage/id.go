package menuimage

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	idPrefix     = "menu"
	randomLength = 9
	base36       = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var alphabetSize = big.NewInt(int64(len(base36)))

// GenerateID returns an identifier of the form menu_<unix millis>_<9 base36 chars>
func GenerateID() string {
	return fmt.Sprintf("%s_%d_%s", idPrefix, time.Now().UnixMilli(), randomSuffix())
}

func randomSuffix() string {
	buf := make([]byte, randomLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			// crypto/rand only fails when the OS source is broken
			n = big.NewInt(time.Now().UnixNano() % int64(len(base36)))
		}
		buf[i] = base36[n.Int64()]
	}
	return string(buf)
}
