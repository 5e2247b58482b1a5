// Command server wires configuration, storage, and the HTTP surface
// into a single process.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	billingmod "github.com/agrikit/agrikit/modules/billing"
	onboardingmod "github.com/agrikit/agrikit/modules/onboarding"
	"github.com/agrikit/agrikit/pkg/billing"
	"github.com/agrikit/agrikit/pkg/config"
	"github.com/agrikit/agrikit/pkg/email"
	"github.com/agrikit/agrikit/pkg/httpserver"
	"github.com/agrikit/agrikit/pkg/identity"
	"github.com/agrikit/agrikit/pkg/logger"
	appmongo "github.com/agrikit/agrikit/pkg/mongo"
	"github.com/agrikit/agrikit/pkg/onboarding"
	"github.com/agrikit/agrikit/pkg/paypal"
	"github.com/agrikit/agrikit/pkg/paystack"
	"github.com/agrikit/agrikit/pkg/promo"
	"github.com/agrikit/agrikit/pkg/ratelimit"
	appredis "github.com/agrikit/agrikit/pkg/redis"
	"github.com/agrikit/agrikit/pkg/subscription"
	"github.com/agrikit/agrikit/pkg/tenant"
	"github.com/agrikit/agrikit/pkg/user"
)

type appConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	// EmailDevDir is where the dev sender drops rendered emails when
	// no Postmark token is configured.
	EmailDevDir string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`

	// PlansFile is the YAML plan catalog; validated at startup.
	PlansFile string `env:"PLANS_FILE" envDefault:"./config/plans.yaml"`

	RedisEnabled     bool          `env:"REDIS_ENABLED" envDefault:"false"`
	PublicRateLimit  int           `env:"PUBLIC_RATE_LIMIT" envDefault:"30"`
	PublicRateWindow time.Duration `env:"PUBLIC_RATE_WINDOW" envDefault:"1m"`
}

func main() {
	var appCfg appConfig
	config.MustLoad(&appCfg)

	log := logger.New(logger.WithEnvironment(appCfg.Environment, "agrikit"))
	logger.SetAsDefault(log)

	if err := run(context.Background(), appCfg, log); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg appConfig, log *slog.Logger) error {
	var (
		mongoCfg      appmongo.Config
		emailCfg      email.Config
		paystackCfg   paystack.Config
		paypalCfg     paypal.Config
		onboardingCfg onboarding.Config
	)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&emailCfg)
	config.MustLoad(&paystackCfg)
	config.MustLoad(&paypalCfg)
	config.MustLoad(&onboardingCfg)

	plans := subscription.NewYAMLSource(appCfg.PlansFile)
	if _, err := plans.Load(ctx); err != nil {
		return err
	}

	payments, err := paypal.NewClient(paypalCfg)
	if err != nil {
		return err
	}

	client, err := appmongo.New(ctx, mongoCfg)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background()) //nolint:errcheck // process is exiting
	db := client.Database(mongoCfg.DatabaseName)

	profiles := user.NewMongoStore(db)
	tenants := tenant.NewMongoStore(db)
	promos := promo.NewMongoStore(db)
	transactor := appmongo.NewTransactor(client)

	var mailer email.Sender
	if emailCfg.PostmarkServerToken != "" {
		mailer = email.MustNewPostmarkClient(emailCfg)
	} else {
		log.Warn("no postmark token configured, writing emails to disk",
			slog.String("dir", appCfg.EmailDevDir))
		mailer = email.NewDevSender(appCfg.EmailDevDir)
	}

	// TODO: swap for the hosted identity provider client once its
	// service account is provisioned.
	ids := identity.NewLocalProvider()

	onboardingSvc := onboarding.NewService(
		onboardingCfg, tenants, profiles, ids, mailer, transactor, log)
	ledger := promo.NewLedger(promos, log)
	reconciler := billing.NewReconciler(
		paystackCfg.SecretKey, tenants, profiles, ledger, transactor, log)
	checkout := billing.NewCheckout(plans, promos, payments, log)

	readiness := []func(context.Context) error{appmongo.Healthcheck(client)}

	var limitStore ratelimit.Store = ratelimit.NewMemoryStore()
	if appCfg.RedisEnabled {
		var redisCfg appredis.Config
		config.MustLoad(&redisCfg)
		rdb, err := appredis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer rdb.Close() //nolint:errcheck // process is exiting
		limitStore = ratelimit.NewRedisStore(rdb, "agrikit")
		readiness = append(readiness, appredis.Healthcheck(rdb))
	}
	limiter, err := ratelimit.NewFixedWindow(limitStore, appCfg.PublicRateLimit, appCfg.PublicRateWindow)
	if err != nil {
		return err
	}
	rateLimit := ratelimit.Middleware(limiter, ratelimit.Composite(ratelimit.ByIP(), ratelimit.ByPath()))

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", httpserver.HealthCheckHandler(ctx, log))
	r.Get("/ready", httpserver.HealthCheckHandler(ctx, log, readiness...))

	r.Mount("/billing", billingmod.Router(billingmod.RouterOptions{
		Webhook:   billingmod.NewWebhookService(reconciler, log),
		Checkout:  billingmod.NewCheckoutService(checkout, log),
		Access:    billingmod.NewAccessService(tenants, profiles, log),
		RateLimit: rateLimit,
	}))
	r.Mount("/onboarding", onboardingmod.Router(onboardingmod.RouterOptions{
		Tenants:     onboardingmod.NewTenantService(onboardingSvc, log),
		Invitations: onboardingmod.NewInvitationService(onboardingSvc, log),
		Signup:      onboardingmod.NewSignupService(onboardingSvc, log),
		RateLimit:   rateLimit,
	}))

	srv := httpserver.New(
		httpserver.WithAddr(appCfg.HTTPAddr),
		httpserver.WithLogger(log),
	)
	return srv.Run(ctx, http.Handler(r))
}
