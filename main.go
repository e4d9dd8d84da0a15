package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/tshims/shule/apps/api/echo"
	"github.com/tshims/shule/core"
	"github.com/tshims/shule/core/assessment"
	"github.com/tshims/shule/core/notes"
	"github.com/tshims/shule/core/schedule"
	"github.com/tshims/shule/core/student"
	"github.com/tshims/shule/core/subject"
	"github.com/tshims/shule/core/teacher"
	emailsvc "github.com/tshims/shule/services/email"
	logsvc "github.com/tshims/shule/services/logger"
	"github.com/tshims/shule/storage/mongodb"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	ctx := context.Background()
	client, err := mongodb.Open(ctx, conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = client.Disconnect(ctx); err != nil {
			logger.Error(fmt.Sprintf("disconnecting database: %v", err), err)
		}
	}()

	db := mongodb.NewDB(client, conf)
	if err = db.EnsureIndexes(ctx); err != nil {
		logger.Fatal(fmt.Sprintf("ensuring indexes: %v", err), err)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	teacherSvc := teacher.NewService(mongodb.NewTeacherRepository(db))
	studentSvc := student.NewService(mongodb.NewStudentRepository(db))
	subjectSvc := subject.NewService(mongodb.NewSubjectRepository(db))
	internalSvc := assessment.NewService(mongodb.NewInternalRepository(db))
	notesSvc := notes.NewService(mongodb.NewNotesRepository(db))
	scheduleSvc := schedule.NewService(mongodb.NewScheduleRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:        conf,
			Logger:      logger,
			MailSvc:     mailSvc,
			TeacherSvc:  teacherSvc,
			StudentSvc:  studentSvc,
			SubjectSvc:  subjectSvc,
			InternalSvc: internalSvc,
			NotesSvc:    notesSvc,
			ScheduleSvc: scheduleSvc,
			Validate:    validate,
			Translator:  translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
