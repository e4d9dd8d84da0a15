package echoapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tshims/shule/core/assessment"
	"github.com/tshims/shule/core/subject"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type internalApi struct {
	svc        *assessment.Service
	subjectSvc *subject.Service
	validate   *validator.Validate
}

func registerInternalAPI(e *echo.Echo, deps ServerDeps) {
	api := internalApi{
		svc:        deps.InternalSvc,
		subjectSvc: deps.SubjectSvc,
		validate:   deps.Validate,
	}

	g := e.Group("/internal")
	g.POST("", api.create)
	g.PATCH("", api.update)
	// the trailing id names a subject on reads and a record on delete,
	// matching the legacy route shape
	g.GET("/student/:studentId", api.filterByStudent)
	g.GET("/:id", api.retrieve)
	g.GET("/:id/sheet", api.markSheet)
	g.DELETE("/:id", api.destroy)
}

// Handlers

func (api *internalApi) create(ctx echo.Context) error {
	var data assessment.NewInternal
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewInternal")
	}
	if err := data.Validate(ctx.Request().Context(), api.validate, api.svc); err != nil {
		return err
	}

	if _, err := api.svc.Create(ctx.Request().Context(), data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, messageResponse{Message: "Internal Record Added"})
}

// update replaces a record's subject reference and marks wholesale.
func (api *internalApi) update(ctx echo.Context) error {
	var data assessment.UpdateInternal
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateInternal")
	}
	if err := data.Validate(ctx.Request().Context(), api.validate, api.svc); err != nil {
		return err
	}

	if _, err := api.svc.Update(ctx.Request().Context(), data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, messageResponse{Message: "Internal Record Updated"})
}

func (api *internalApi) filterByStudent(ctx echo.Context) error {
	id, err := pathID(ctx, "studentId")
	if err != nil {
		return err
	}

	results, err := api.svc.FilterByStudent(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, results)
}

func (api *internalApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	in, err := api.svc.GetBySubject(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, in)
}

// markSheet exports a subject's record as an .xlsx download. The record may
// outlive its subject; a deleted subject falls back to the hex id.
func (api *internalApi) markSheet(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	in, err := api.svc.GetBySubject(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	subjectName := id.Hex()
	if detail, err := api.subjectSvc.Get(ctx.Request().Context(), id); err == nil {
		subjectName = detail.Name
	}

	f, err := assessment.BuildMarkSheet(in, subjectName)
	if err != nil {
		return errors.Wrap(err, "building mark sheet")
	}

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, xlsxContentType)
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.xlsx"`, subjectName))
	res.WriteHeader(http.StatusOK)
	if _, err := f.WriteTo(res); err != nil {
		return errors.Wrap(err, "writing mark sheet")
	}
	return nil
}

func (api *internalApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, messageResponse{Message: "Internal Record deleted"})
}
