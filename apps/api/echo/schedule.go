package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tshims/shule/core/schedule"
)

type scheduleApi struct {
	svc      *schedule.Service
	validate *validator.Validate
}

func registerScheduleAPI(e *echo.Echo, deps ServerDeps) {
	api := scheduleApi{
		svc:      deps.ScheduleSvc,
		validate: deps.Validate,
	}

	g := e.Group("/time_schedule")
	g.GET("", api.query)
	g.GET("/:teacherId", api.retrieve)
	g.POST("/:teacherId", api.create)
	g.PATCH("/:teacherId", api.update)
	g.DELETE("/:teacherId", api.destroy)
}

// Handlers

func (api *scheduleApi) query(ctx echo.Context) error {
	schedules, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	if schedules == nil {
		schedules = []schedule.TimeSchedule{}
	}
	return ctx.JSON(http.StatusOK, schedules)
}

func (api *scheduleApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, "teacherId")
	if err != nil {
		return err
	}

	ts, err := api.svc.GetByTeacher(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ts)
}

func (api *scheduleApi) create(ctx echo.Context) error {
	id, err := pathID(ctx, "teacherId")
	if err != nil {
		return err
	}

	var data schedule.NewTimeSchedule
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTimeSchedule")
	}
	if err := data.Validate(ctx.Request().Context(), api.validate, api.svc, id); err != nil {
		return err
	}

	if _, err := api.svc.Create(ctx.Request().Context(), data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, messageResponse{Message: "Time Schedule Added"})
}

func (api *scheduleApi) update(ctx echo.Context) error {
	id, err := pathID(ctx, "teacherId")
	if err != nil {
		return err
	}

	orig, err := api.svc.GetByTeacher(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	var data schedule.UpdateTimeSchedule
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTimeSchedule")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if _, err := api.svc.Update(ctx.Request().Context(), orig, data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, messageResponse{Message: "Time Schedule Updated"})
}

func (api *scheduleApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, "teacherId")
	if err != nil {
		return err
	}

	if err := api.svc.DeleteByTeacher(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, messageResponse{Message: "Time Schedule Deleted"})
}
