package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tshims/shule/core/notes"
)

type notesApi struct {
	svc      *notes.Service
	validate *validator.Validate
}

func registerNotesAPI(e *echo.Echo, deps ServerDeps) {
	api := notesApi{
		svc:      deps.NotesSvc,
		validate: deps.Validate,
	}

	g := e.Group("/notes")
	g.GET("/subject/:subjectId", api.queryBySubject)
	g.POST("/subject/:subjectId", api.create)
	g.GET("/:noteId", api.retrieve)
	g.PATCH("/:noteId", api.update)
	g.DELETE("/:noteId", api.destroy)
}

// Handlers

func (api *notesApi) queryBySubject(ctx echo.Context) error {
	id, err := pathID(ctx, "subjectId")
	if err != nil {
		return err
	}

	nts, err := api.svc.QueryBySubject(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	if nts == nil {
		nts = []notes.Note{}
	}
	return ctx.JSON(http.StatusOK, nts)
}

func (api *notesApi) create(ctx echo.Context) error {
	id, err := pathID(ctx, "subjectId")
	if err != nil {
		return err
	}

	var data notes.NewNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNote")
	}
	if err := data.Validate(ctx.Request().Context(), api.validate, api.svc, id); err != nil {
		return err
	}

	if _, err := api.svc.Create(ctx.Request().Context(), data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, messageResponse{Message: "Note Added Successfully"})
}

func (api *notesApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, "noteId")
	if err != nil {
		return err
	}

	n, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *notesApi) update(ctx echo.Context) error {
	id, err := pathID(ctx, "noteId")
	if err != nil {
		return err
	}

	orig, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	var data notes.UpdateNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateNote")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if _, err := api.svc.Update(ctx.Request().Context(), orig, data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, messageResponse{Message: "Notes Updated"})
}

func (api *notesApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, "noteId")
	if err != nil {
		return err
	}

	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, messageResponse{Message: "Notes Deleted"})
}
