package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/pkg/ratelimit"
)

// LogConfig is shared by every command.
type LogConfig struct {
	Env       string `help:"Deployment environment." default:"dev" env:"FLOCK_ENV" enum:"dev,staging,prod"`
	LogLevel  string `help:"Log level." default:"info" env:"LOG_LEVEL" enum:"debug,info,warn,error"`
	LogFormat string `help:"Log format." default:"json" env:"LOG_FORMAT" enum:"json,text"`
}

// StoreConfig locates the database and the password pepper.
type StoreConfig struct {
	DatabaseFile string `help:"Path to the SQLite database file." default:"flock.db" env:"FLOCK_DATABASE_FILE"`
	PepperFile   string `help:"Path to the password pepper, generated on first start." default:"pepper" env:"FLOCK_PEPPER_FILE"`
}

// LimitConfig is the plan limits a freshly registered organization gets.
type LimitConfig struct {
	People       int `help:"People allowed on a new organization, 0 for unlimited." default:"200" env:"FLOCK_LIMIT_PEOPLE"`
	Groups       int `help:"Groups allowed on a new organization, 0 for unlimited." default:"20" env:"FLOCK_LIMIT_GROUPS"`
	ServicePlans int `help:"Service plans allowed on a new organization, 0 for unlimited." default:"50" env:"FLOCK_LIMIT_SERVICE_PLANS"`
}

func (l LimitConfig) PlanLimits() domain.PlanLimits {
	return domain.PlanLimits{People: l.People, Groups: l.Groups, ServicePlans: l.ServicePlans}
}

// RateLimitConfig selects where rate limit windows live. Memory is per
// process; run redis when more than one instance serves traffic.
type RateLimitConfig struct {
	Store         string        `help:"Rate limit store." default:"memory" env:"FLOCK_RATELIMIT_STORE" enum:"memory,redis"`
	RedisAddr     string        `help:"Redis address for the redis store." default:"localhost:6379" env:"FLOCK_REDIS_ADDR"`
	RedisPassword string        `help:"Redis password." env:"FLOCK_REDIS_PASSWORD"`
	RedisDB       int           `help:"Redis database number." default:"0" env:"FLOCK_REDIS_DB"`
	LoginAttempts int           `help:"Login attempts allowed per address and email within the window." default:"5" env:"FLOCK_LOGIN_ATTEMPTS"`
	LoginWindow   time.Duration `help:"Login rate limit window." default:"15m" env:"FLOCK_LOGIN_WINDOW"`
}

func (c RateLimitConfig) Login() ratelimit.Config {
	return ratelimit.Config{Limit: c.LoginAttempts, Window: c.LoginWindow}
}

// Config is everything `flock serve` needs.
type Config struct {
	LogConfig   `embed:""`
	StoreConfig `embed:""`

	Listen      string   `help:"HTTP listen address." default:":8080" env:"FLOCK_LISTEN"`
	AppURL      string   `help:"Public URL of the web app, used in mailed links." default:"http://localhost:8080" env:"FLOCK_APP_URL"`
	TrustProxy  bool     `help:"Take the client address from X-Forwarded-For." env:"FLOCK_TRUST_PROXY"`
	CORSOrigins []string `help:"Origins allowed to call the API from a browser." env:"FLOCK_CORS_ORIGINS"`

	SessionTTL           time.Duration `help:"How long a login lasts." default:"168h" env:"FLOCK_SESSION_TTL"`
	TrialLength          time.Duration `help:"Trial length of a new organization, 0 for none." default:"336h" env:"FLOCK_TRIAL_LENGTH"`
	HousekeepingSchedule string        `help:"Cron spec for sweeping expired sessions, invites and tokens." default:"@every 1h" env:"FLOCK_HOUSEKEEPING_SCHEDULE"`
	ShutdownGracePeriod  time.Duration `help:"Time allowed for in-flight requests on shutdown." default:"10s" env:"SHUTDOWN_GRACE_PERIOD"`

	Limits    LimitConfig     `embed:"" prefix:"limit-"`
	RateLimit RateLimitConfig `embed:"" prefix:"ratelimit-"`
}

// Validate checks what the flag parser cannot.
func (c Config) Validate() error {
	var errs []error

	if c.SessionTTL < time.Minute {
		errs = append(errs, errors.New("session ttl must be at least 1m"))
	}
	if c.TrialLength < 0 {
		errs = append(errs, errors.New("trial length must not be negative"))
	}
	if c.Limits.People < 0 || c.Limits.Groups < 0 || c.Limits.ServicePlans < 0 {
		errs = append(errs, errors.New("plan limits must not be negative"))
	}
	if c.RateLimit.LoginAttempts < 1 || c.RateLimit.LoginWindow <= 0 {
		errs = append(errs, errors.New("login rate limit needs at least 1 attempt and a positive window"))
	}
	if c.RateLimit.Store == "redis" && c.RateLimit.RedisAddr == "" {
		errs = append(errs, errors.New("redis rate limit store needs --ratelimit-redis-addr"))
	}
	if c.HousekeepingSchedule != "" {
		if _, err := cron.ParseStandard(c.HousekeepingSchedule); err != nil {
			errs = append(errs, fmt.Errorf("housekeeping schedule: %w", err))
		}
	}

	return errors.Join(errs...)
}
