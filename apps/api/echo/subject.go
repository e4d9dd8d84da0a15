package echoapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tshims/shule/core/subject"
)

type subjectApi struct {
	svc      *subject.Service
	validate *validator.Validate
}

func registerSubjectAPI(e *echo.Echo, deps ServerDeps) {
	api := subjectApi{
		svc:      deps.SubjectSvc,
		validate: deps.Validate,
	}

	g := e.Group("/subject")
	g.POST("", api.create)
	g.GET("/manage/:studentId", api.catalog)
	g.GET("/students/:subjectId", api.listStudents)
	g.GET("/teacher/:teacherId", api.listByTeacher)
	g.GET("/student/:studentId", api.listForStudent)
	g.GET("/:subjectId", api.retrieve)
	g.PATCH("/:subjectId", api.updateStudents)
	g.DELETE("/:subjectId", api.destroy)
}

// Handlers

func (api *subjectApi) create(ctx echo.Context) error {
	var data subject.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := data.Validate(ctx.Request().Context(), api.validate, api.svc); err != nil {
		return err
	}

	sub, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, messageResponse{Message: fmt.Sprintf("New Subject %s added", sub.Name)})
}

// catalog returns every Subject with a `joined` flag for the given student.
func (api *subjectApi) catalog(ctx echo.Context) error {
	id, err := pathID(ctx, "studentId")
	if err != nil {
		return err
	}

	subjects, err := api.svc.Catalog(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	if subjects == nil {
		subjects = []subject.CatalogSubject{}
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *subjectApi) listStudents(ctx echo.Context) error {
	id, err := pathID(ctx, "subjectId")
	if err != nil {
		return err
	}

	students, err := api.svc.ListStudents(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	if students == nil {
		students = []subject.EnrolledStudent{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *subjectApi) listByTeacher(ctx echo.Context) error {
	id, err := pathID(ctx, "teacherId")
	if err != nil {
		return err
	}

	subjects, err := api.svc.ListByTeacher(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	if subjects == nil {
		subjects = []subject.TeacherSubject{}
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *subjectApi) listForStudent(ctx echo.Context) error {
	id, err := pathID(ctx, "studentId")
	if err != nil {
		return err
	}

	subjects, err := api.svc.ListForStudent(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	if subjects == nil {
		subjects = []subject.StudentSubject{}
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *subjectApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, "subjectId")
	if err != nil {
		return err
	}

	detail, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, detail)
}

func (api *subjectApi) updateStudents(ctx echo.Context) error {
	id, err := pathID(ctx, "subjectId")
	if err != nil {
		return err
	}

	var data subject.UpdateStudents
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudents")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.ReplaceStudents(ctx.Request().Context(), id, data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, messageResponse{Message: "Updated"})
}

func (api *subjectApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, "subjectId")
	if err != nil {
		return err
	}

	detail, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("%s deleted", detail.Name)})
}
