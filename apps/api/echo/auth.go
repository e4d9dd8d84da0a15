package echoapi

import (
	"fmt"
	"net/http"
	"net/mail"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tshims/shule/core"
	"github.com/tshims/shule/core/student"
	"github.com/tshims/shule/core/teacher"
)

var errEmailNotSent = echo.NewHTTPError(http.StatusBadRequest, "Email not sent.")

type authApi struct {
	conf       *core.Config
	mailSvc    core.EmailService
	teacherSvc *teacher.Service
	studentSvc *student.Service
	validate   *validator.Validate
}

func registerAuthAPI(e *echo.Echo, deps ServerDeps) {
	api := authApi{
		conf:       deps.Conf,
		mailSvc:    deps.MailSvc,
		teacherSvc: deps.TeacherSvc,
		studentSvc: deps.StudentSvc,
		validate:   deps.Validate,
	}

	g := e.Group("/auth")
	g.POST("/login/teacher", api.teacherLogin)
	g.POST("/login/student", api.studentLogin)
	g.POST("/reset/password", api.resetPassword)
}

// Handlers

func (api *authApi) teacherLogin(ctx echo.Context) error {
	var data teacher.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	profile, err := api.teacherSvc.Authenticate(ctx.Request().Context(), data.Username, data.Password)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, profile)
}

func (api *authApi) studentLogin(ctx echo.Context) error {
	var data teacher.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	profile, err := api.studentSvc.Authenticate(ctx.Request().Context(), data.Username, data.Password)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, profile)
}

func (api *authApi) resetPassword(ctx echo.Context) error {
	var data resetPasswordRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to resetPasswordRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/user/reset-password/%s", api.conf.FrontendBaseURL, data.Token)
	msg := &core.EmailMessage{
		To:      []mail.Address{{Name: data.Username, Address: data.Email}},
		Subject: "Password Reset",
		HTMLContent: fmt.Sprintf(
			"<p>Hi %s,</p><p>You requested a password reset. Click the link below to set a new password.</p>"+
				`<p><a href="%s">%s</a></p><p>If you did not request this, you can safely ignore this email.</p>`,
			data.Username, link, link,
		),
	}
	if err := api.mailSvc.SendMessage(msg); err != nil {
		ctx.Logger().Errorf("%+v", errors.Wrap(err, "sending password reset email"))
		return errEmailNotSent
	}
	return ctx.JSON(http.StatusOK, messageResponse{Message: "Email sent successfully."})
}

type resetPasswordRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Token    string `json:"token" validate:"required"`
}

func (rr *resetPasswordRequest) Validate(validate *validator.Validate) error {
	rr.Username = core.CleanString(rr.Username)
	rr.Email = core.CleanString(rr.Email, true /* lower */)
	return validate.Struct(rr)
}
