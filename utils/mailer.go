package utils

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
)

// Mailer delivers account emails. Actual delivery is an external concern;
// the default implementation just logs so the verification flow can be
// exercised end to end without an SMTP setup.
type Mailer interface {
	Send(to, subject, body string) error
}

type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	log.Printf("mail to %s: %s - %s", to, subject, body)
	return nil
}

// GenerateOTP returns a random 6-digit verification code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
