package user

import (
	"context"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tmahmud/shikkha/core"
)

var (
	ErrNotFound             = errors.New("user not found")
	ErrStudentIDExists      = errors.New("a user with this user id already exists")
	ErrStudentIDReserved    = errors.New("this user id is reserved")
	ErrAuthenticationFailed = errors.New("invalid credentials")

	// NowFunc is mockable for tests.
	NowFunc = time.Now
)

type (
	// Repository persists the identity collection.
	// Every write is a full-record (or full-collection) replacement.
	Repository interface {
		CreateUser(ctx context.Context, usr User) (User, error)
		QueryAllUsers(ctx context.Context) ([]User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByStudentID(ctx context.Context, studentID string) (User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
		DeleteUser(ctx context.Context, id string) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

func (svc *Service) checkStudentIDUniqueness(studentID string) error {
	if studentID == SuperuserStudentID {
		return core.NewValidationError(ErrStudentIDReserved,
			core.FieldError{Field: "studentId", Error: ErrStudentIDReserved.Error()})
	}
	_, err := svc.repo.GetUserByStudentID(context.Background(), studentID)
	if err == nil {
		return core.NewValidationError(ErrStudentIDExists,
			core.FieldError{Field: "studentId", Error: ErrStudentIDExists.Error()})
	}
	if errors.Cause(err) != ErrNotFound {
		return errors.Wrap(err, "checking user id uniqueness")
	}
	return nil
}

// Register creates a standard identity. The caller is expected to have
// called NewUser.Validate first; uniqueness is re-checked here so the
// collection is never mutated on a duplicate handle.
func (svc *Service) Register(ctx context.Context, nu NewUser) (User, error) {
	if err := svc.checkStudentIDUniqueness(nu.StudentID); err != nil {
		return User{}, err
	}

	usr := User{
		ID:        uuid.New().String(),
		Name:      nu.Name,
		StudentID: nu.StudentID,
		Password:  nu.Password,
		Email:     nu.Email,
		Role:      RoleStudent,
		JoinDate:  NowFunc().UTC(),
	}
	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, errors.Wrap(err, "creating user")
	}

	if usr.Email != "" {
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
			Subject:      "Welcome to " + svc.conf.SchoolName,
			TemplateName: "welcome",
			TemplateData: usr.Public(),
		})
	}
	return usr, nil
}

// Authenticate resolves credentials to an identity.
// The reserved superuser pair short-circuits the store entirely.
func (svc *Service) Authenticate(ctx context.Context, studentID, password string) (User, error) {
	studentID = core.CleanString(studentID)
	if studentID == SuperuserStudentID && password == SuperuserPassword {
		return Superuser(), nil
	}

	usr, err := svc.repo.GetUserByStudentID(ctx, studentID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrAuthenticationFailed
		}
		return User{}, errors.Wrap(err, "finding user by user id")
	}
	if err = usr.CheckPassword(password); err != nil {
		return User{}, ErrAuthenticationFailed
	}
	return usr, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.QueryAllUsers(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	if id == SuperuserID {
		return Superuser(), nil
	}
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByStudentID(ctx context.Context, studentID string) (User, error) {
	return svc.repo.GetUserByStudentID(ctx, core.CleanString(studentID))
}

// UpdateProfile replaces the user record with a copy whose profile fields
// carry the edited values; everything else is untouched.
func (svc *Service) UpdateProfile(ctx context.Context, id string, up UpdateProfile) (User, error) {
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return User{}, errors.Wrap(err, "finding user by ID")
	}
	if up.Name != "" {
		usr.Name = up.Name
	}
	usr.ClassName = up.ClassName
	usr.Roll = up.Roll
	usr.Phone = up.Phone
	return svc.update(ctx, usr)
}

// UpdatePhoto replaces the user's photo blob.
func (svc *Service) UpdatePhoto(ctx context.Context, id, photo string) (User, error) {
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return User{}, errors.Wrap(err, "finding user by ID")
	}
	usr.Photo = photo
	return svc.update(ctx, usr)
}

// UpdateCardConfig merges the given cosmetic tokens into the user's card config.
func (svc *Service) UpdateCardConfig(ctx context.Context, id string, cfg IDCardConfig) (User, error) {
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return User{}, errors.Wrap(err, "finding user by ID")
	}
	usr.CardConfig = &cfg
	return svc.update(ctx, usr)
}

func (svc *Service) update(ctx context.Context, usr User) (User, error) {
	usr, err := svc.repo.UpdateUser(ctx, usr)
	if err != nil {
		return User{}, errors.Wrap(err, "updating user")
	}
	return usr, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return errors.Wrap(svc.repo.DeleteUser(ctx, id), "deleting user")
}
