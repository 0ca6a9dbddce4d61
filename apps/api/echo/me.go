package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tmahmud/shikkha/core"
	"github.com/tmahmud/shikkha/core/photo"
	"github.com/tmahmud/shikkha/core/user"
)

type meApi struct {
	conf     *core.Config
	svc      *user.Service
	validate *validator.Validate
}

func registerMeAPI(g *echo.Group, jwt echo.MiddlewareFunc, conf *core.Config, svc *user.Service, validate *validator.Validate) {
	api := meApi{
		conf:     conf,
		svc:      svc,
		validate: validate,
	}

	mg := g.Group("/me", jwt)
	mg.GET("", api.retrieve)
	mg.PUT("/profile", api.updateProfile)
	mg.PUT("/photo", api.updatePhoto)
	mg.PUT("/card-config", api.updateCardConfig, studentMiddleware())
	mg.GET("/card", api.card, studentMiddleware())
}

type (
	// PhotoRequest carries a camera still frame as a data URL.
	// File uploads use multipart form field "photo" instead.
	PhotoRequest struct {
		DataURL string `json:"dataUrl"`
	}

	// IDCardView is the render model of the printable student ID card.
	IDCardView struct {
		SchoolName string            `json:"schoolName"`
		Name       string            `json:"name"`
		StudentID  string            `json:"studentId"`
		ClassName  string            `json:"className,omitempty"`
		Roll       string            `json:"roll,omitempty"`
		Photo      string            `json:"photo,omitempty"`
		JoinDate   time.Time         `json:"joinDate"`
		Config     user.IDCardConfig `json:"idCardConfig"`
	}
)

// Handlers

func (api *meApi) retrieve(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, usr.Public())
}

func (api *meApi) updateProfile(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data user.UpdateProfile
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProfile")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err = api.svc.UpdateProfile(ctx.Request().Context(), usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating profile")
	}
	return ctx.JSON(http.StatusOK, usr.Public())
}

// updatePhoto accepts either a multipart upload (field "photo") or a JSON
// body carrying a camera frame as a data URL. Both resolve to the same
// candidate blob; a failed capture leaves the stored photo untouched.
func (api *meApi) updatePhoto(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	src, err := api.photoSource(ctx)
	if err != nil {
		return err
	}

	blob, err := src.Capture(ctx.Request().Context())
	if err != nil {
		switch errors.Cause(err) {
		case photo.ErrNotAnImage, photo.ErrBadDataURL:
			return core.NewValidationError(err, core.FieldError{Field: "photo", Error: err.Error()})
		}
		return errors.Wrap(err, "capturing photo")
	}

	usr, err = api.svc.UpdatePhoto(ctx.Request().Context(), usr.ID, blob.DataURL())
	if err != nil {
		return errors.Wrap(err, "updating photo")
	}
	return ctx.JSON(http.StatusOK, usr.Public())
}

func (api *meApi) photoSource(ctx echo.Context) (photo.Source, error) {
	if fh, err := ctx.FormFile("photo"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, errors.Wrap(err, "opening uploaded photo")
		}
		return photo.NewFileSource(f), nil
	}

	var data PhotoRequest
	if err := ctx.Bind(&data); err != nil {
		return nil, errors.Wrap(err, "binding to PhotoRequest")
	}
	if data.DataURL == "" {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "photo", Error: "photo is required"})
	}
	return photo.NewFrameSource(data.DataURL), nil
}

func (api *meApi) updateCardConfig(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data user.IDCardConfig
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to IDCardConfig")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err = api.svc.UpdateCardConfig(ctx.Request().Context(), usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating card config")
	}
	return ctx.JSON(http.StatusOK, usr.Public())
}

// card returns everything the printable ID card shows; printing itself
// happens on the client.
func (api *meApi) card(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	return ctx.JSON(http.StatusOK, IDCardView{
		SchoolName: api.conf.SchoolName,
		Name:       usr.Name,
		StudentID:  usr.StudentID,
		ClassName:  usr.ClassName,
		Roll:       usr.Roll,
		Photo:      usr.Photo,
		JoinDate:   usr.JoinDate,
		Config:     usr.CardConfigOrDefault(),
	})
}
