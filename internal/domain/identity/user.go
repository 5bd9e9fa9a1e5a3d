package identity

import (
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tripshare/backend/internal/domain/shared"
)

const (
	bcryptCost = 12

	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 6
	maxPasswordLength = 128
	maxMantraLength   = 128
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)

// User is the account aggregate. The mantra is the user's short biography
// line shown on every trip card; the bio photo is stored as raw bytes and
// travels over the wire as a base64 data URL.
type User struct {
	shared.BaseAggregateRoot
	Username     string
	PasswordHash string
	Mantra       string
	BioPhoto     []byte
	BioPhotoType string
}

// NewUser creates a user with a freshly hashed password.
func NewUser(username, password, mantra string) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if err := validateMantra(mantra); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		PasswordHash:      string(hash),
		Mantra:            mantra,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangeUsername updates the username after validation. Uniqueness is
// enforced by the repository.
func (u *User) ChangeUsername(username string) error {
	if err := validateUsername(username); err != nil {
		return err
	}
	u.Username = username
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// ChangeMantra updates the biography line.
func (u *User) ChangeMantra(mantra string) error {
	if err := validateMantra(mantra); err != nil {
		return err
	}
	u.Mantra = mantra
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// ChangeBioPhoto replaces the profile photo. An empty payload clears it.
func (u *User) ChangeBioPhoto(photo []byte, mediaType string) {
	u.BioPhoto = photo
	u.BioPhotoType = mediaType
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// HasBioPhoto reports whether a profile photo is stored.
func (u *User) HasBioPhoto() bool {
	return len(u.BioPhoto) > 0
}

func validateUsername(username string) error {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return shared.NewDomainError("VALIDATION_ERROR", "username must be between 3 and 50 characters")
	}
	if !usernamePattern.MatchString(username) {
		return shared.NewDomainError("VALIDATION_ERROR", "username may only contain letters, digits, dots, dashes and underscores")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return shared.NewDomainError("VALIDATION_ERROR", "password must be between 6 and 128 characters")
	}
	return nil
}

func validateMantra(mantra string) error {
	if mantra == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "mantra is required")
	}
	if len(mantra) > maxMantraLength {
		return shared.NewDomainError("VALIDATION_ERROR", "mantra must not exceed 128 characters")
	}
	return nil
}
