package main

import (
	"context"
	"flag"
	"log/slog"

	"netivim/ai/gemini"
	"netivim/ai/gpt"
	"netivim/bot"
	"netivim/impl/core"
	"netivim/internal/config"
	repository "netivim/internal/database"
	"netivim/internal/http-server/api"
	"netivim/internal/lib/logger"
	"netivim/internal/lib/metrics"
	"netivim/internal/lib/sl"
	"netivim/internal/service/advisor"
	"netivim/internal/service/geocoder"
	"netivim/internal/service/intake"
	"netivim/internal/store"
	"netivim/internal/ws"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telegram admin notifier, also receives error records
	var tgBot *bot.TgBot
	if conf.Telegram.Enabled {
		var err error
		tgBot, err = bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
		} else {
			lg = logger.SetupTelegramHandler(lg, tgBot, slog.LevelError)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")
		}
	}

	lg.Info("starting netivim", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	mc, err := metrics.New()
	if err != nil {
		lg.Error("metrics", sl.Err(err))
		return
	}

	persister, closeStorage := newPersister(conf, lg)
	defer closeStorage()

	schools := store.New(persister, lg)
	schools.SetObserver(mc)
	_, firstRun, err := schools.Load(ctx)
	if err != nil {
		lg.Error("load schools", sl.Err(err))
		return
	}
	lg.With(
		slog.Int("schools", schools.Len()),
		slog.Bool("first_run", firstRun),
	).Info("school collection loaded")

	hub := ws.NewHub(schools, lg)
	go hub.Run(ctx)

	err = mc.RegisterGauge("netivim_schools_total", "Number of schools in the collection.", func() float64 {
		return float64(schools.Len())
	})
	if err != nil {
		lg.Error("register schools gauge", sl.Err(err))
	}
	err = mc.RegisterGauge("netivim_map_clients", "Connected map clients.", func() float64 {
		return float64(hub.Count())
	})
	if err != nil {
		lg.Error("register map clients gauge", sl.Err(err))
	}

	var regions intake.RegionResolver = geocoder.DerivedRegion{}
	if conf.Intake.RegionMode == "static" {
		regions = geocoder.StaticRegion(conf.Intake.DefaultRegion)
	}
	form := intake.New(geocoder.NewNominatim(conf, lg), schools, regions, lg)
	form.SetObserver(mc)
	form.AddListener(hub)
	if tgBot != nil {
		form.AddListener(tgBot)
	}
	lg.With(
		slog.String("geocoder", conf.Geocoder.BaseURL),
		slog.String("region_mode", conf.Intake.RegionMode),
	).Info("intake form initialized")

	handler := core.New(lg)
	handler.SetRepository(schools)
	handler.SetIntake(form)
	handler.SetFirstRun(firstRun)

	generator := newGenerator(ctx, conf, lg)
	if generator != nil {
		manager := advisor.NewManager(generator, conf.Advisor.SessionTTL, conf.Advisor.Timeout, lg)
		manager.SetObserver(mc)
		handler.SetAdvisor(manager)
		lg.With(
			slog.String("provider", conf.Advisor.Provider),
			sl.Secret("api_key", conf.Advisor.ApiKey),
		).Info("advisor initialized")
	}

	// *** blocking start with http server ***
	err = api.New(conf, lg, handler, api.Options{Hub: hub, Metrics: mc.Handler()})
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}

func newPersister(conf *config.Config, lg *slog.Logger) (store.Persister, func()) {
	switch conf.Storage.Driver {
	case "mongo":
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("user", conf.Mongo.User),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo storage")
		return repository.NewMongoClient(conf, store.Key, lg), func() {}
	case "redis":
		db := repository.NewRedisClient(conf.Redis.URL, store.Key, lg)
		lg.Info("redis storage")
		return db, func() { _ = db.Close() }
	default:
		lg.With(slog.String("path", conf.Storage.Path)).Info("file storage")
		return repository.NewFile(conf.Storage.Path), func() {}
	}
}

// newGenerator returns nil when the advisor is not configured.
func newGenerator(ctx context.Context, conf *config.Config, lg *slog.Logger) advisor.Generator {
	if conf.Advisor.ApiKey == "" {
		lg.Warn("advisor api key not set, advisor disabled")
		return nil
	}
	switch conf.Advisor.Provider {
	case "openai":
		return gpt.NewOverseer(conf.Advisor.ApiKey, conf.Advisor.Model, lg)
	default:
		gen, err := gemini.New(ctx, conf.Advisor.ApiKey, conf.Advisor.Model, conf.Advisor.WebGrounded, lg)
		if err != nil {
			lg.Error("gemini client", sl.Err(err))
			return nil
		}
		return gen
	}
}
