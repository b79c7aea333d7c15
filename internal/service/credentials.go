package service

import (
	"crypto/rand"
	"crypto/sha1" //nolint:gosec // activation keys keep their 40-hex-char format
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultLoginRedirect is where a user lands when no usable next URL was given.
const DefaultLoginRedirect = "/"

var (
	ErrPasswordTooLong = errors.New("password too long")

	// A "//" before any "?" means an absolute or protocol-relative URL.
	offsiteRedirect = regexp.MustCompile(`^[^?]*//`)
)

// SafeRedirect cleans a user-supplied "next" URL so it never points back at
// the sign-in form or off the site.
func SafeRedirect(next string) string {
	if strings.Contains(next, "sign-in") {
		next = ""
	}
	if next == "" || strings.Contains(next, " ") {
		return DefaultLoginRedirect
	}
	if strings.Contains(next, "//") && offsiteRedirect.MatchString(next) {
		return DefaultLoginRedirect
	}
	return next
}

// NewActivationKey returns sha1(salt + username) as 40 hex chars, where salt
// is the first five hex chars of the sha1 of a random value.
func NewActivationKey(username string) (string, error) {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return "", fmt.Errorf("reading random seed: %w", err)
	}
	seedSum := sha1.Sum(seed) //nolint:gosec
	salt := hex.EncodeToString(seedSum[:])[:5]
	sum := sha1.Sum([]byte(salt + username)) //nolint:gosec
	return hex.EncodeToString(sum[:]), nil
}

func newSessionToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
