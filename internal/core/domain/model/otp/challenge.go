package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

const (
	// CodeLength is the number of decimal digits of a code.
	CodeLength = 6

	// TTL is how long an issued code stays valid.
	TTL = 10 * time.Minute

	// Retention is how long a consumed or expired challenge is kept before purge.
	Retention = 24 * time.Hour
)

var (
	ErrOtpInvalid         = errors.New("otp is invalid")
	ErrOtpExpired         = errors.New("otp has expired")
	ErrOtpAlreadyConsumed = errors.New("otp has already been used")

	ErrChallengeIsNotConstructed = errors.New("Challenge must be created via Issue")
)

// Challenge is the single outstanding OTP of an order. Only the bcrypt hash
// of the code is kept; the plain code leaves the service once, through the
// OtpSender, to the holder.
//
// Issuing a new challenge for an order replaces the stored one, so an order
// never has more than one code that can be verified.
type Challenge struct {
	orderID    kernel.UUID
	kind       Kind
	codeHash   []byte
	issuedAt   time.Time
	expiresAt  time.Time
	consumedAt *time.Time

	isConstructed bool
}

// Issue hashes code and opens a challenge that expires TTL after now.
//
// Parameters:
//   - orderID: the order the handoff belongs to
//   - kind: handoff kind
//   - code: CodeLength decimal digits, usually from GenerateCode
//   - now: issue instant
//
// Returns:
//   - *Challenge: the open challenge
//   - error: validation errors, or the hashing failure
func Issue(orderID kernel.UUID, kind Kind, code string, now time.Time) (*Challenge, error) {
	if err := errors.Join(orderID.Validate(), kind.Validate(), validateCode(code)); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash otp code: %w", err)
	}

	return &Challenge{
		orderID:       orderID,
		kind:          kind,
		codeHash:      hash,
		issuedAt:      now.UTC(),
		expiresAt:     now.UTC().Add(TTL),
		isConstructed: true,
	}, nil
}

// RestoreChallenge rebuilds a stored challenge.
func RestoreChallenge(
	orderID kernel.UUID,
	kind Kind,
	codeHash []byte,
	issuedAt, expiresAt time.Time,
	consumedAt *time.Time,
) (*Challenge, error) {
	if err := errors.Join(orderID.Validate(), kind.Validate()); err != nil {
		return nil, err
	}
	if len(codeHash) == 0 {
		return nil, errs.NewValueIsRequiredError("code hash")
	}
	return &Challenge{
		orderID:       orderID,
		kind:          kind,
		codeHash:      codeHash,
		issuedAt:      issuedAt,
		expiresAt:     expiresAt,
		consumedAt:    consumedAt,
		isConstructed: true,
	}, nil
}

func (c *Challenge) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrChallengeIsNotConstructed
	}
	return nil
}

func (c *Challenge) OrderID() kernel.UUID {
	return c.orderID
}

func (c *Challenge) Kind() Kind {
	return c.kind
}

func (c *Challenge) CodeHash() []byte {
	return c.codeHash
}

func (c *Challenge) IssuedAt() time.Time {
	return c.issuedAt
}

func (c *Challenge) ExpiresAt() time.Time {
	return c.expiresAt
}

func (c *Challenge) ConsumedAt() *time.Time {
	return c.consumedAt
}

func (c *Challenge) IsConsumed() bool {
	return c.consumedAt != nil
}

func (c *Challenge) IsExpired(now time.Time) bool {
	return now.After(c.expiresAt)
}

// Verify checks code against the challenge and consumes it on success.
//
// Checks run in this order:
//  1. wrong kind or code mismatch: ErrOtpInvalid
//  2. the right code was already used: ErrOtpAlreadyConsumed
//  3. the right code arrived after expiry: ErrOtpExpired
//
// Example:
//
//	if err := challenge.Verify(otp.Pickup, "482193", now); err != nil {
//	    return err // errors.Is(err, otp.ErrOtpInvalid)
//	}
func (c *Challenge) Verify(kind Kind, code string, now time.Time) error {
	if kind != c.kind {
		return ErrOtpInvalid
	}
	if bcrypt.CompareHashAndPassword(c.codeHash, []byte(code)) != nil {
		return ErrOtpInvalid
	}
	if c.consumedAt != nil {
		return ErrOtpAlreadyConsumed
	}
	if c.IsExpired(now) {
		return ErrOtpExpired
	}

	consumedAt := now.UTC()
	c.consumedAt = &consumedAt
	return nil
}

// GenerateCode returns CodeLength uniformly random decimal digits.
func GenerateCode() (string, error) {
	limit := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generate otp code: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}

// RandomCodeGenerator issues codes from crypto/rand.
type RandomCodeGenerator struct{}

func (RandomCodeGenerator) Generate() (string, error) {
	return GenerateCode()
}

func validateCode(code string) error {
	if len(code) != CodeLength {
		return errs.NewValueIsInvalidErrorWithCause("otp code", fmt.Errorf("expected %d digits", CodeLength))
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause("otp code", fmt.Errorf("expected %d digits", CodeLength))
		}
	}
	return nil
}
