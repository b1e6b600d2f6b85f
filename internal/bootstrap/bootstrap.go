package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	hclog "github.com/hashicorp/go-hclog"
	"go.uber.org/zap"

	chatinadapter "fathom/internal/modules/chat/adapter/in"
	chatoutadapter "fathom/internal/modules/chat/adapter/out"
	chatdomain "fathom/internal/modules/chat/domain"
	chatout "fathom/internal/modules/chat/port/out"
	chatservice "fathom/internal/modules/chat/service"
	chatusecase "fathom/internal/modules/chat/usecase"
	journalinadapter "fathom/internal/modules/journal/adapter/in"
	journaloutadapter "fathom/internal/modules/journal/adapter/out"
	journalservice "fathom/internal/modules/journal/service"
	journalusecase "fathom/internal/modules/journal/usecase"
	materialsinadapter "fathom/internal/modules/materials/adapter/in"
	materialsoutadapter "fathom/internal/modules/materials/adapter/out"
	materialsservice "fathom/internal/modules/materials/service"
	materialsusecase "fathom/internal/modules/materials/usecase"
	progressinadapter "fathom/internal/modules/progression/adapter/in"
	progressoutadapter "fathom/internal/modules/progression/adapter/out"
	progressdomain "fathom/internal/modules/progression/domain"
	progressservice "fathom/internal/modules/progression/service"
	progressusecase "fathom/internal/modules/progression/usecase"
	"fathom/internal/platform/clock"
	"fathom/internal/platform/config"
	"fathom/internal/platform/httpapi"
	"fathom/internal/platform/id"
	"fathom/internal/platform/logging"
	"fathom/internal/platform/tx"
	uiapp "fathom/internal/ui/app"

	_ "modernc.org/sqlite"
)

type App struct {
	Config config.Config
	Logger *zap.Logger

	ProgressCLI  progressinadapter.CLIHandler
	JournalCLI   journalinadapter.CLIHandler
	ChatCLI      chatinadapter.CLIHandler
	MaterialsCLI materialsinadapter.CLIHandler
	MaterialsTUI materialsinadapter.TUIHandler

	Router http.Handler

	db      *sql.DB
	plugins []*chatoutadapter.PluginResponder
}

// New wires every module against the vault at cfg.VaultPath.
func New(cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	clk := clock.SystemClock{}
	calendar := clock.NewCalendar(cfg.Location)
	ids := id.UUIDv7{}

	catalog, err := progressoutadapter.NewYAMLCatalogStore(cfg.CatalogPath).Load(context.Background())
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; the event log and the journal index share this handle.
	db.SetMaxOpenConns(1)
	app := &App{Config: cfg, Logger: logger, db: db}
	if err := app.wire(clk, calendar, ids, catalog); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

func (a *App) wire(clk clock.Clock, calendar clock.Calendar, ids id.Generator, catalog progressdomain.Catalog) error {
	cfg := a.Config

	events, err := progressoutadapter.NewSQLiteEventLogDB(a.db)
	if err != nil {
		return fmt.Errorf("new progression event log: %w", err)
	}
	progressUC := progressusecase.NewInteractor(progressservice.NewProgressService(
		clk,
		ids,
		progressdomain.NewEngine(catalog, calendar),
		progressoutadapter.NewFileStateStore(cfg.DataDir),
		progressservice.Options{
			UserID:       cfg.UserID,
			StoreTimeout: cfg.StoreTimeout,
			Logger:       a.Logger,
			Events:       events,
			Tx:           &tx.Serial{},
		},
	))

	projector, err := journaloutadapter.NewSQLiteEntryProjectorDB(a.db)
	if err != nil {
		return fmt.Errorf("new journal projector: %w", err)
	}
	journalSvc := journalservice.NewJournalService(
		clk,
		calendar,
		ids,
		journaloutadapter.NewVaultEntryStore(cfg.VaultPath),
		projector,
		journaloutadapter.NewVaultQuestionLog(journaloutadapter.NewFileQuestionStore(cfg.DataDir), cfg.VaultPath),
	).WithStoreTimeout(cfg.StoreTimeout).WithLogger(a.Logger)
	journalUC := journalusecase.NewInteractor(journalSvc, journaloutadapter.NewProgressionAdapter(progressUC), a.Logger)

	chatSvc := chatservice.NewChatService(
		clk,
		ids,
		chatoutadapter.NewVaultSessionStore(cfg.VaultPath),
		a.responder(),
		a.Logger,
	).WithStoreTimeout(cfg.StoreTimeout)
	chatUC := chatusecase.NewInteractor(
		chatSvc,
		chatoutadapter.NewFileActiveChatStore(cfg.DataDir),
		chatoutadapter.NewProgressionAdapter(progressUC),
		a.Logger,
	)

	materialsUC := materialsusecase.NewInteractor(materialsservice.NewMaterialsService(
		materialsoutadapter.NewProgressionAdapter(progressUC),
		materialsoutadapter.NewDirPDFLibrary(cfg.PDFDir),
		materialsoutadapter.NewLocalPDFReader(),
		materialsoutadapter.NewLocalMarkdownReader(),
		materialsoutadapter.NewOSExternalLauncher(),
		cfg.MaterialsPath,
	).WithModules(materialsoutadapter.NewYAMLModuleCatalog(cfg.ModulesPath)), a.Logger)

	a.ProgressCLI = progressinadapter.NewCLIHandler(progressUC)
	a.JournalCLI = journalinadapter.NewCLIHandler(journalUC)
	a.ChatCLI = chatinadapter.NewCLIHandler(chatUC)
	a.MaterialsCLI = materialsinadapter.NewCLIHandler(materialsUC)
	a.MaterialsTUI = materialsinadapter.NewTUIHandler(materialsUC)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(httpapi.RequestLogger(a.Logger))
	progressinadapter.NewHTTPHandler(progressUC).Routes(r)
	journalinadapter.NewHTTPHandler(journalUC).Routes(r)
	chatinadapter.NewHTTPHandler(chatUC).Routes(r)
	materialsinadapter.NewHTTPHandler(materialsUC).Routes(r)
	a.Router = r
	return nil
}

// responder picks the external plugin when one is configured and the built-in templates otherwise.
func (a *App) responder() chatout.Responder {
	if a.Config.ResponderPlugin == "" {
		return chatoutadapter.NewCannedResponder(chatdomain.NewCannedResponder(nil))
	}
	plugin := chatoutadapter.NewPluginResponder(a.Config.ResponderPlugin, hclog.New(&hclog.LoggerOptions{
		Name:   "responder",
		Level:  hclog.LevelFromString(a.Config.LogLevel),
		Output: os.Stderr,
	}))
	a.plugins = append(a.plugins, plugin)
	a.Logger.Info("using responder plugin", zap.String("binary", a.Config.ResponderPlugin))
	return plugin
}

func (a *App) Close() error {
	for _, p := range a.plugins {
		p.Close()
	}
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.Config.VaultPath, app.ProgressCLI, app.JournalCLI, app.MaterialsTUI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
