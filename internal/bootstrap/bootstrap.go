package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	tea "github.com/charmbracelet/bubbletea"

	accessinadapter "microhub/internal/modules/access/adapter/in"
	accessoutadapter "microhub/internal/modules/access/adapter/out"
	accessservice "microhub/internal/modules/access/service"
	accessusecase "microhub/internal/modules/access/usecase"
	cataloginadapter "microhub/internal/modules/catalog/adapter/in"
	catalogoutadapter "microhub/internal/modules/catalog/adapter/out"
	catalogservice "microhub/internal/modules/catalog/service"
	catalogusecase "microhub/internal/modules/catalog/usecase"
	courseinadapter "microhub/internal/modules/course/adapter/in"
	courseoutadapter "microhub/internal/modules/course/adapter/out"
	courseservice "microhub/internal/modules/course/service"
	courseusecase "microhub/internal/modules/course/usecase"
	outreachinadapter "microhub/internal/modules/outreach/adapter/in"
	outreachoutadapter "microhub/internal/modules/outreach/adapter/out"
	outreachout "microhub/internal/modules/outreach/port/out"
	outreachservice "microhub/internal/modules/outreach/service"
	outreachusecase "microhub/internal/modules/outreach/usecase"
	paymentinadapter "microhub/internal/modules/payment/adapter/in"
	paymentoutadapter "microhub/internal/modules/payment/adapter/out"
	paymentservice "microhub/internal/modules/payment/service"
	paymentusecase "microhub/internal/modules/payment/usecase"
	progressinadapter "microhub/internal/modules/progress/adapter/in"
	progressoutadapter "microhub/internal/modules/progress/adapter/out"
	progressservice "microhub/internal/modules/progress/service"
	progressusecase "microhub/internal/modules/progress/usecase"
	"microhub/internal/platform/clock"
	"microhub/internal/platform/config"
	"microhub/internal/platform/id"
	"microhub/internal/platform/logging"
	uiapp "microhub/internal/ui/app"
)

type App struct {
	CatalogCLI  cataloginadapter.CLIHandler
	ProgressCLI progressinadapter.CLIHandler
	AccessCLI   accessinadapter.CLIHandler
	OutreachCLI outreachinadapter.CLIHandler
	CourseCLI   courseinadapter.CLIHandler
	PaymentCLI  paymentinadapter.CLIHandler

	closers []io.Closer
}

// Close releases the stores opened by New.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// New wires every module against cfg. Links that are not opened in a
// browser are written to out.
func New(cfg config.Config, logger *slog.Logger, out io.Writer) (*App, error) {
	logger = logging.OrDiscard(logger)
	clk := clock.SystemClock{}

	projector, err := progressoutadapter.NewSQLiteProgressProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new progress projector: %w", err)
	}
	progressUC := progressusecase.NewInteractor(progressservice.NewProgressService(
		clk,
		progressoutadapter.NewFileTableStore(cfg.ProgressPath),
		projector,
		logger.With("module", "progress"),
	))

	catalogUC := catalogusecase.NewInteractor(catalogservice.NewCatalogService(
		catalogoutadapter.NewYAMLCourseSource(cfg.CatalogPath),
	))

	var launcher outreachout.Launcher
	if cfg.OpenLinks {
		launcher = outreachoutadapter.NewOSLauncher()
	} else {
		launcher = outreachoutadapter.NewWriterLauncher(out)
	}
	outreachUC := outreachusecase.NewInteractor(outreachservice.NewOutreachService(
		clk, cfg.WhatsAppNumber, launcher, logger.With("module", "outreach"),
	))

	accessUC := accessusecase.NewInteractor(accessservice.NewGateService(
		clk,
		cfg.VerifyDelay,
		accessoutadapter.NewProgressGrantAdapter(progressUC),
		logger.With("module", "access"),
	))

	courseUC := courseusecase.NewInteractor(courseservice.NewCourseService(
		clk,
		id.UUID{},
		courseoutadapter.NewCatalogCourseAdapter(catalogUC),
		courseoutadapter.NewProgressAdapter(progressUC),
		courseoutadapter.NewGateAdapter(accessUC),
		courseoutadapter.NewOutreachMessengerAdapter(outreachUC),
		courseoutadapter.NewVaultSubmissionStore(cfg.HomePath),
		logger.With("module", "course"),
	))

	paymentUC := paymentusecase.NewInteractor(paymentservice.NewPaymentService(
		clk,
		cfg.PaymentDelay,
		cfg.TillNumber,
		rand.IntN,
		paymentoutadapter.NewOutreachNotifier(outreachUC),
		paymentoutadapter.NewAccessCodeVerifier(accessUC),
		paymentoutadapter.NewFileReceiptStore(cfg.HomePath),
		logger.With("module", "payment"),
	))

	return &App{
		CatalogCLI:  cataloginadapter.NewCLIHandler(catalogUC),
		ProgressCLI: progressinadapter.NewCLIHandler(progressUC),
		AccessCLI:   accessinadapter.NewCLIHandler(accessUC),
		OutreachCLI: outreachinadapter.NewCLIHandler(outreachUC),
		CourseCLI:   courseinadapter.NewCLIHandler(courseUC),
		PaymentCLI:  paymentinadapter.NewCLIHandler(paymentUC),
		closers:     []io.Closer{projector},
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.CatalogCLI, app.CourseCLI, app.PaymentCLI, app.ProgressCLI, app.OutreachCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
