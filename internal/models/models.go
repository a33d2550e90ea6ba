package models

import "time"

// Role is a capability tag attached to a user account.
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// roleLabels maps known roles to their human-readable labels.
var roleLabels = map[Role]string{
	RoleUser:  "User",
	RoleAdmin: "Administrator",
}

// Label returns the display label for the role. Unknown roles are
// passed through unmodified so the server can introduce new roles
// without breaking older clients.
func (r Role) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return string(r)
}

// Identity is the authenticated user's view of itself: the email that
// keys the account plus the roles granted to it.
type Identity struct {
	Email string `json:"email"`
	Roles []Role `json:"roles"`
}

// HasRole reports whether the identity carries the given role.
func (i Identity) HasRole(role Role) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Car represents a car model offered for rent, with its available
// trim configurations.
type Car struct {
	ID             int64           `json:"id,omitempty"`
	Make           string          `json:"make" yaml:"make" validate:"required"`
	Model          string          `json:"model" yaml:"model" validate:"required"`
	Year           int             `json:"year" yaml:"year" validate:"required,gte=1950"`
	Configurations []Configuration `json:"configurations,omitempty" yaml:"configurations"`
}

// Configuration is a concrete trim of a car: fuel, transmission, seat
// count and the providers renting it out.
type Configuration struct {
	ID               int64          `json:"id,omitempty"`
	Name             string         `json:"name" yaml:"name" validate:"required"`
	FuelType         string         `json:"fuelType" yaml:"fuelType" validate:"required"`
	TransmissionType string         `json:"transmissionType" yaml:"transmissionType" validate:"required"`
	NumberOfSeats    int            `json:"numberOfSeats" yaml:"numberOfSeats" validate:"gte=1"`
	ExtraFeatures    []ExtraFeature `json:"extraFeatures,omitempty" yaml:"extraFeatures"`
	Providers        []Provider     `json:"providers,omitempty" yaml:"providers"`
}

// ExtraFeature is an add-on attached to a configuration (e.g. heated
// seats, retro design).
type ExtraFeature struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name" yaml:"name" validate:"required"`
}

// Provider is a rental provider offering a configuration at a daily
// price in a given location.
type Provider struct {
	ID        int64   `json:"id,omitempty"`
	Name      string  `json:"name" yaml:"name" validate:"required"`
	Price     float64 `json:"price" yaml:"price" validate:"gte=0"`
	Location  string  `json:"location" yaml:"location"`
	Available bool    `json:"available" yaml:"available"`
	Visible   bool    `json:"visible" yaml:"visible"`
}

// Rental is a booking of a provider's car for a time window. Start
// and end times are unix milliseconds, matching the backend wire
// format.
type Rental struct {
	ID        int64     `json:"id,omitempty"`
	StartTime int64     `json:"startTime" validate:"required,gt=0"`
	EndTime   int64     `json:"endTime" validate:"required,gtfield=StartTime"`
	Provider  *Provider `json:"provider,omitempty"`
	User      *User     `json:"user,omitempty"`
}

// Starts returns the rental start as a time.Time.
func (r Rental) Starts() time.Time {
	return time.UnixMilli(r.StartTime)
}

// Ends returns the rental end as a time.Time.
func (r Rental) Ends() time.Time {
	return time.UnixMilli(r.EndTime)
}

// Receipt records a completed rental and its total price.
type Receipt struct {
	ID           int64   `json:"id,omitempty"`
	CarName      string  `json:"carName"`
	ProviderName string  `json:"providerName"`
	StartTime    int64   `json:"startTime"`
	EndTime      int64   `json:"endTime"`
	TotalPrice   float64 `json:"totalPrice"`
}

// User is a customer account as returned by the backend.
type User struct {
	ID          int64  `json:"id,omitempty"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Active      bool   `json:"active"`
	Roles       []Role `json:"roles,omitempty"`
}

// Identity derives the session identity from a user account.
func (u User) Identity() Identity {
	return Identity{Email: u.Email, Roles: u.Roles}
}

// AuthRequest is the login payload for POST /api/authenticate.
type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the bearer token returned by the
// authentication and registration endpoints.
type AuthResponse struct {
	Token string `json:"token"`
}

// RegisterRequest is the account creation payload for
// POST /api/register.
type RegisterRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
}

// UserUpdate is the payload for PUT /api/users/{email}.
type UserUpdate struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

// PasswordUpdate is the payload for PUT /api/users/{email}/password.
type PasswordUpdate struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}
