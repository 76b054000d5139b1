package application

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/hotelmanager/service-rooms/internal/domain/guest"
)

const (
	passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	passwordSymbols  = "!#$%?"
)

// GuestProvisioner creates guest accounts during booking: a derived unique
// email, a generated one-time password, and a bcrypt hash at rest.
type GuestProvisioner struct {
	emailDomain string
}

// NewGuestProvisioner creates a GuestProvisioner issuing addresses under the
// given email domain.
func NewGuestProvisioner(emailDomain string) *GuestProvisioner {
	if emailDomain == "" {
		emailDomain = "guests.hotel"
	}
	return &GuestProvisioner{emailDomain: emailDomain}
}

// Provision creates and persists a guest account for the named guest,
// retrying the derived email with a numeric suffix until it is unique. The
// returned raw password exists only in memory; callers surface it exactly
// once and never persist it.
func (p *GuestProvisioner) Provision(ctx context.Context, repos RepoSet, hotelID uuid.UUID, firstName, lastName string) (*guest.Account, string, error) {
	first := capitalize(firstName)
	last := capitalize(lastName)

	email, err := p.ensureUniqueEmail(ctx, repos, buildEmail(firstName, lastName, p.emailDomain))
	if err != nil {
		return nil, "", err
	}

	rawPassword, err := generatePassword(first, last)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate guest password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash guest password: %w", err)
	}

	account, err := guest.NewAccount(hotelID, first, last, email, string(hash))
	if err != nil {
		return nil, "", err
	}
	if err := repos.Guests().Save(ctx, account); err != nil {
		return nil, "", fmt.Errorf("failed to save guest account: %w", err)
	}

	return account, rawPassword, nil
}

func (p *GuestProvisioner) ensureUniqueEmail(ctx context.Context, repos RepoSet, base string) (string, error) {
	email := base
	for i := 2; ; i++ {
		exists, err := repos.Guests().ExistsByEmail(ctx, email)
		if err != nil {
			return "", fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if !exists {
			return email, nil
		}
		at := strings.IndexByte(base, '@')
		email = fmt.Sprintf("%s%d%s", base[:at], i, base[at:])
	}
}

func buildEmail(firstName, lastName, domain string) string {
	fn := strings.ReplaceAll(slugify(firstName), "-", "")
	ln := strings.ReplaceAll(slugify(lastName), "-", "")
	if fn == "" {
		fn = "guest"
	}
	if ln == "" {
		ln = "x"
	}
	return fn + "." + ln + "@" + domain
}

var asciiFold = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// slugify lowercases, strips diacritics and collapses everything that is not
// alphanumeric into single dashes.
func slugify(s string) string {
	folded, _, err := transform.String(asciiFold, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	lastDash := true
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func capitalize(s string) string {
	t := strings.TrimSpace(strings.ToLower(s))
	if t == "" {
		return t
	}
	r := []rune(t)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// generatePassword builds a name-derived prefix followed by random characters
// and a symbol, padded to at least 12 characters.
func generatePassword(firstName, lastName string) (string, error) {
	base := []rune(strings.ReplaceAll(firstName+lastName, " ", ""))
	if len(base) < 4 {
		base = []rune("GuestHotel")
	}

	var b strings.Builder
	b.WriteString(string(base[:4]))
	for i := 0; i < 8; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		if err != nil {
			return "", err
		}
		b.WriteByte(passwordAlphabet[n.Int64()])
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordSymbols))))
	if err != nil {
		return "", err
	}
	b.WriteByte(passwordSymbols[n.Int64()])

	pw := b.String()
	if len(pw) < 12 {
		pw += "1234"
	}
	return pw, nil
}
