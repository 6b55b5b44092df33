package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"hiring-backend/internal/audit"
	"hiring-backend/internal/calendar"
	googlecal "hiring-backend/internal/calendar/google"
	"hiring-backend/internal/candidates"
	"hiring-backend/internal/embedding"
	"hiring-backend/internal/embedding/gemini"
	"hiring-backend/internal/exams"
	"hiring-backend/internal/feedback"
	"hiring-backend/internal/interviews"
	"hiring-backend/internal/jobs"
	"hiring-backend/internal/notify"
	gmailnotify "hiring-backend/internal/notify/gmail"
	"hiring-backend/internal/policy"
	"hiring-backend/internal/shared/config"
	"hiring-backend/internal/shared/server"
	"hiring-backend/internal/shared/storage/db"
	"hiring-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	JobsRepo      jobs.Repo
	CandidateRepo candidates.Repo
	ProposalRepo  interviews.Repo
	FeedbackRepo  feedback.Repo
	ExamsRepo     exams.Repo
	AuditRepo     audit.Repo

	Embedder  embedding.Embedder
	Calendar  calendar.Tool
	Messenger notify.Messenger

	Audit            *audit.Recorder
	JobsService      *jobs.Service
	CandidateService *candidates.Service
	Gate             *interviews.Service
	Executor         *interviews.Executor
	Reaper           *interviews.Reaper
	FeedbackService  *feedback.Service
	ExamsService     *exams.Service
}

// Build prepares shared dependencies and the router. The approval gate's
// dispatch runs the executor on a goroutine; tests override OnApproved to run
// it inline.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	policyCfg := policy.Config{Threshold: cfg.ScoreThreshold, Margin: cfg.ScoreMargin}
	if err := policyCfg.Validate(); err != nil {
		return nil, fmt.Errorf("decision policy: %w", err)
	}

	ctx := context.Background()
	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}
	buildRepos(app)
	if err := buildTools(ctx, app); err != nil {
		return nil, err
	}
	buildServices(app, policyCfg)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		JobsHandler:       jobs.NewHandler(app.JobsService),
		CandidatesHandler: candidates.NewHandler(app.CandidateService),
		ProposalsHandler:  interviews.NewHandler(app.Gate),
		FeedbackHandler:   feedback.NewHandler(app.FeedbackService),
		ExamsHandler:      exams.NewHandler(app.ExamsService),
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildRepos(app *App) {
	if app.DB != nil {
		app.JobsRepo = &jobs.PGRepo{DB: app.DB}
		app.CandidateRepo = &candidates.PGRepo{DB: app.DB}
		app.ProposalRepo = &interviews.PGRepo{DB: app.DB}
		app.FeedbackRepo = &feedback.PGRepo{DB: app.DB}
		app.ExamsRepo = &exams.PGRepo{DB: app.DB}
		app.AuditRepo = &audit.PGRepo{DB: app.DB}
		return
	}
	app.JobsRepo = jobs.NewMemoryRepo()
	app.CandidateRepo = candidates.NewMemoryRepo()
	app.ProposalRepo = interviews.NewMemoryRepo()
	app.FeedbackRepo = feedback.NewMemoryRepo()
	app.ExamsRepo = exams.NewMemoryRepo()
	app.AuditRepo = audit.NewMemoryRepo()
}

func buildTools(ctx context.Context, app *App) error {
	cfg := app.Config

	app.Embedder = embedding.Placeholder{}
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel)
		if err != nil {
			return fmt.Errorf("embedding client: %w", err)
		}
		app.Embedder = client
	}

	app.Calendar = calendar.Placeholder{}
	app.Messenger = notify.LogMessenger{}
	if cfg.GoogleTokenFile != "" {
		cal, err := googlecal.NewClient(ctx, googlecal.Config{
			CalendarID: cfg.GoogleCalendarID,
			TokenFile:  cfg.GoogleTokenFile,
		})
		if err != nil {
			return fmt.Errorf("calendar client: %w", err)
		}
		app.Calendar = cal

		mail, err := gmailnotify.NewClient(ctx, gmailnotify.Config{TokenFile: cfg.GoogleTokenFile})
		if err != nil {
			return fmt.Errorf("gmail client: %w", err)
		}
		app.Messenger = mail
	}
	return nil
}

func buildServices(app *App, policyCfg policy.Config) {
	cfg := app.Config
	app.Audit = &audit.Recorder{Repo: app.AuditRepo}

	gate := &interviews.Service{
		Repo:  app.ProposalRepo,
		TTL:   cfg.ProposalTTL,
		Audit: app.Audit,
	}

	candidateSvc := &candidates.Service{
		Repo:     app.CandidateRepo,
		Jobs:     app.JobsRepo,
		Embedder: app.Embedder,
		Policy:   policyCfg,
		Gate:     gate,
		Audit:    app.Audit,
	}

	executor := &interviews.Executor{
		Repo:      app.ProposalRepo,
		Calendar:  app.Calendar,
		Messenger: app.Messenger,
		Contacts:  candidateSvc,
		Audit:     app.Audit,
		Config: interviews.ExecConfig{
			InterviewDuration: cfg.InterviewDuration,
			MinNotice:         cfg.MinNotice,
			SearchWindow:      cfg.SearchWindow,
			WorkDayStartHour:  cfg.WorkDayStartHour,
			WorkDayEndHour:    cfg.WorkDayEndHour,
			SlotRetryMax:      cfg.SlotRetryMax,
			BookingRetryMax:   cfg.BookingRetryMax,
			NotifyRetryMax:    cfg.NotifyRetryMax,
			RetryBaseDelay:    cfg.RetryBaseDelay,
		},
	}
	gate.OnApproved = func(p interviews.Proposal) {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					telemetry.Error("executor.panic", map[string]any{
						"proposal_id": p.ID,
						"panic":       fmt.Sprint(r),
					})
				}
			}()
			executor.Execute(context.Background(), p)
		}()
	}

	app.Gate = gate
	app.Executor = executor
	app.Reaper = &interviews.Reaper{Gate: gate, Interval: cfg.ReaperInterval}
	app.JobsService = &jobs.Service{Repo: app.JobsRepo, Embedder: app.Embedder, Audit: app.Audit}
	app.CandidateService = candidateSvc
	app.FeedbackService = &feedback.Service{Repo: app.FeedbackRepo, Candidates: app.CandidateRepo, Audit: app.Audit}
	app.ExamsService = &exams.Service{Repo: app.ExamsRepo, Jobs: app.JobsRepo, Candidates: app.CandidateRepo, Audit: app.Audit}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
