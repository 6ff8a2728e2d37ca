package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/remuikids/kidsboard/internal/domain"
	"github.com/remuikids/kidsboard/internal/gradeband"
	"github.com/remuikids/kidsboard/internal/moodle"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "KIDSBOARD"

	StoreSQLite = "sqlite"
	StoreMoodle = "moodle"
)

type Config struct {
	Store  string       `mapstructure:"store" validate:"oneof=sqlite moodle"`
	DB     DBConfig     `mapstructure:"db"`
	Moodle MoodleConfig `mapstructure:"moodle"`
	Grade  GradeConfig  `mapstructure:"grade"`
	Roles  RolesConfig  `mapstructure:"roles"`
	Log    LogConfig    `mapstructure:"log"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type MoodleConfig struct {
	DSN    string `mapstructure:"dsn"`
	Prefix string `mapstructure:"prefix"`
}

type GradeConfig struct {
	ElementaryMax int    `mapstructure:"elementary_max"`
	MiddleMax     int    `mapstructure:"middle_max"`
	HighMax       int    `mapstructure:"high_max"`
	TieBreak      string `mapstructure:"tie_break" validate:"oneof=first_listed highest_grade lowest_grade"`
	ProfileField  string `mapstructure:"profile_field" validate:"required"`
}

type RolesConfig struct {
	Teacher []string `mapstructure:"teacher" validate:"min=1"`
	Student []string `mapstructure:"student" validate:"min=1"`
	Manager []string `mapstructure:"manager" validate:"min=1"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// LoadOptions points Load at optional inputs. Zero values mean "look in the
// usual places".
type LoadOptions struct {
	// ConfigFile is an explicit config path; it must exist when set.
	ConfigFile string
	// EnvFile is a dotenv file; missing files are ignored. Defaults to ".env".
	EnvFile string
	// Flags are bound over file and environment values when changed.
	Flags *pflag.FlagSet
}

// FlagKeys maps persistent CLI flag names to config keys.
var FlagKeys = map[string]string{
	"store":         "store",
	"db":            "db.path",
	"moodle-dsn":    "moodle.dsn",
	"moodle-prefix": "moodle.prefix",
	"tie-break":     "grade.tie_break",
	"log-level":     "log.level",
	"log-format":    "log.format",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store", StoreSQLite)
	v.SetDefault("db.path", defaultDBPath())
	v.SetDefault("moodle.dsn", "")
	v.SetDefault("moodle.prefix", moodle.DefaultPrefix)
	v.SetDefault("grade.elementary_max", gradeband.DefaultElementaryMax)
	v.SetDefault("grade.middle_max", gradeband.DefaultMiddleMax)
	v.SetDefault("grade.high_max", gradeband.DefaultHighMax)
	v.SetDefault("grade.tie_break", string(domain.TieBreakFirstListed))
	v.SetDefault("grade.profile_field", "grade")
	v.SetDefault("roles.teacher", []string(domain.TeacherRoles))
	v.SetDefault("roles.student", []string(domain.StudentRoles))
	v.SetDefault("roles.manager", []string(domain.ManagerRoles))
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "kidsboard.db"
	}
	return filepath.Join(home, ".kidsboard", "kidsboard.db")
}

// Load reads configuration with precedence flags > environment > config file
// > defaults. Environment keys use the KIDSBOARD_ prefix with dots replaced by
// underscores, e.g. KIDSBOARD_GRADE_TIE_BREAK.
func Load(opts LoadOptions) (*Config, error) {
	envFile := domain.CoalesceStr(opts.EnvFile, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("kidsboard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".kidsboard"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if opts.Flags != nil {
		for name, key := range FlagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	cfg.Roles.Teacher = splitRoles(cfg.Roles.Teacher)
	cfg.Roles.Student = splitRoles(cfg.Roles.Student)
	cfg.Roles.Manager = splitRoles(cfg.Roles.Manager)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// splitRoles accepts both list values and a single comma-separated string.
func splitRoles(in []string) []string {
	var out []string
	for _, item := range in {
		for _, r := range strings.Split(item, ",") {
			if r = strings.TrimSpace(r); r != "" {
				out = append(out, r)
			}
		}
	}
	return out
}

var validate = validator.New()

// Validate checks the whole configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validating config: %w", err)
		}
		for _, fe := range fieldErrs {
			errs = append(errs, fmt.Errorf("%s: failed %q check (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	}
	if c.Store == StoreSQLite && strings.TrimSpace(c.DB.Path) == "" {
		errs = append(errs, errors.New("db.path is required for the sqlite store"))
	}
	if c.Store == StoreMoodle && strings.TrimSpace(c.Moodle.DSN) == "" {
		errs = append(errs, errors.New("moodle.dsn is required for the moodle store"))
	}
	if err := c.Boundaries().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("grade boundaries: %w", err))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) Boundaries() gradeband.Boundaries {
	return gradeband.Boundaries{
		ElementaryMax: c.Grade.ElementaryMax,
		MiddleMax:     c.Grade.MiddleMax,
		HighMax:       c.Grade.HighMax,
	}
}

func (c *Config) TieBreak() domain.TieBreakPolicy {
	return domain.TieBreakPolicy(c.Grade.TieBreak)
}

// Classifier builds the grade-band classifier described by the config.
func (c *Config) Classifier() *gradeband.Classifier {
	return gradeband.New(c.Boundaries(), c.TieBreak())
}

func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
