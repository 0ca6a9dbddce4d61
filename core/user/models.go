package user

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tmahmud/shikkha/core"
)

// Roles
const (
	RoleAdmin   = "ADMIN"
	RoleStudent = "STUDENT"
)

// The reserved superuser authenticates against these constants and never
// touches the record store.
const (
	SuperuserID        = "admin-1"
	SuperuserName      = "প্রধান এডমিন"
	SuperuserStudentID = "1"
	SuperuserPassword  = "1"
)

// ID card cosmetic tokens. The card renderer on the frontend maps these
// one-to-one onto its theme classes.
var (
	CardBackgrounds = []string{
		"bg-indigo-600",
		"bg-teal-600",
		"bg-rose-600",
		"bg-amber-600",
		"bg-slate-800",
		"bg-gradient-to-br from-purple-600 to-blue-700",
	}
	CardFonts      = []string{"font-sans", "font-serif", "font-mono"}
	CardTextColors = []string{"text-white", "text-gray-900"}
)

type IDCardConfig struct {
	Background string `json:"backgroundColor" validate:"required"`
	Font       string `json:"fontFamily" validate:"required"`
	TextColor  string `json:"textColor" validate:"required"`
}

// DefaultCardConfig is the card look before a student customizes anything.
func DefaultCardConfig() IDCardConfig {
	return IDCardConfig{
		Background: "bg-indigo-600",
		Font:       "font-sans",
		TextColor:  "text-white",
	}
}

// User is a registered identity, admin or student.
// The password is stored as the source system recorded it; it is stripped
// from every API response (see Public).
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StudentID string `json:"studentId"`
	Password  string `json:"password"`
	Role      string `json:"role"`

	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	ClassName string `json:"className,omitempty"`
	Roll      string `json:"roll,omitempty"`
	Photo     string `json:"photo,omitempty"` // data-URL image blob

	JoinDate   time.Time     `json:"joinDate"`
	CardConfig *IDCardConfig `json:"idCardConfig,omitempty"`
}

func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u *User) IsStudent() bool { return u.Role == RoleStudent }

// CheckPassword compares the stored password with the provided one.
func (u *User) CheckPassword(pwd string) error {
	if u.Password != pwd {
		return ErrAuthenticationFailed
	}
	return nil
}

// CardConfigOrDefault resolves the effective ID card configuration.
func (u *User) CardConfigOrDefault() IDCardConfig {
	if u.CardConfig != nil {
		return *u.CardConfig
	}
	return DefaultCardConfig()
}

// PublicUser is the API representation of a User; same record minus the password.
type PublicUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StudentID string `json:"studentId"`
	Role      string `json:"role"`

	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	ClassName string `json:"className,omitempty"`
	Roll      string `json:"roll,omitempty"`
	Photo     string `json:"photo,omitempty"`

	JoinDate   time.Time     `json:"joinDate"`
	CardConfig *IDCardConfig `json:"idCardConfig,omitempty"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		StudentID:  u.StudentID,
		Role:       u.Role,
		Phone:      u.Phone,
		Email:      u.Email,
		ClassName:  u.ClassName,
		Roll:       u.Roll,
		Photo:      u.Photo,
		JoinDate:   u.JoinDate,
		CardConfig: u.CardConfig,
	}
}

func PublicUsers(users []User) []PublicUser {
	pub := make([]PublicUser, 0, len(users))
	for _, u := range users {
		pub = append(pub, u.Public())
	}
	return pub
}

// Superuser synthesizes the reserved admin identity.
func Superuser() User {
	return User{
		ID:        SuperuserID,
		Name:      SuperuserName,
		StudentID: SuperuserStudentID,
		Password:  SuperuserPassword,
		Role:      RoleAdmin,
		JoinDate:  time.Now().UTC(),
	}
}

// NewUser contains information needed to register a new User.
type NewUser struct {
	Name      string `json:"name" validate:"required,notblank"`
	StudentID string `json:"studentId" validate:"required,notblank"`
	Password  string `json:"password" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc *Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.StudentID = core.CleanString(nu.StudentID)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.checkStudentIDUniqueness(nu.StudentID)
}

// UpdateProfile defines the fields a student may edit on their own record.
// Empty fields keep their previous values; the record is replaced as a whole.
type UpdateProfile struct {
	Name      string `json:"name" validate:"omitempty,notblank"`
	ClassName string `json:"className"`
	Roll      string `json:"roll"`
	Phone     string `json:"phone"`
}

func (up *UpdateProfile) Validate(validate *validator.Validate) error {
	up.Name = core.CleanString(up.Name)
	up.ClassName = core.CleanString(up.ClassName)
	up.Roll = core.CleanString(up.Roll)
	up.Phone = core.CleanString(up.Phone)
	return validate.Struct(up)
}

func (cfg *IDCardConfig) Validate(validate *validator.Validate) error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}
	if !contains(CardBackgrounds, cfg.Background) {
		return core.NewValidationError(nil, core.FieldError{Field: "backgroundColor", Error: "unknown background theme"})
	}
	if !contains(CardFonts, cfg.Font) {
		return core.NewValidationError(nil, core.FieldError{Field: "fontFamily", Error: "unknown font"})
	}
	if !contains(CardTextColors, cfg.TextColor) {
		return core.NewValidationError(nil, core.FieldError{Field: "textColor", Error: "unknown text color"})
	}
	return nil
}

func contains(vals []string, v string) bool {
	for _, val := range vals {
		if val == v {
			return true
		}
	}
	return false
}
