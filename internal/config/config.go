// Package config resolves the presentation server settings once at startup.
// Values are layered as defaults, then the JSON config file, then
// command-line flags, then environment variables.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the settings of the presentation server.
type Config struct {
	RunAddr         string `env:"SERVER_ADDRESS" json:"server_address" validate:"hostname_port"`
	APIBaseURL      string `env:"API_BASE_URL" json:"api_base_url" validate:"url"`
	LogLevel        string `env:"LOG_LEVEL" json:"log_level" validate:"loglevel"`
	SessionFilePath string `env:"SESSION_FILE_PATH" json:"session_file_path" validate:"filepath"`
	TrustedSubnet   string `env:"TRUSTED_SUBNET" json:"trusted_subnet" validate:"omitempty,cidr"`
	ConfigFile      string `env:"CONFIG" json:"-"`

	// trustedSubnetSet marks an explicitly given TrustedSubnet, empty included.
	trustedSubnetSet bool
}

const trustedSubnetEnv = "TRUSTED_SUBNET"

const appName = "globetrotter"

var defaultConfig = Config{
	RunAddr:         "localhost:3000",
	APIBaseURL:      "http://localhost:8000/api/v1",
	LogLevel:        "info",
	SessionFilePath: filepath.Join(xdg.StateHome, appName, "session.json"),
	TrustedSubnet:   "127.0.0.0/8",
}

func validateFilePath(fieldLevel validator.FieldLevel) bool {
	path := fieldLevel.Field().String()
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return os.IsNotExist(err)
	}

	return !info.IsDir()
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	allowedLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}

	return allowedLogLevels[fieldLevel.Field().String()]
}

func (c *Config) validate() error {
	validate := validator.New()

	err := validate.RegisterValidation("loglevel", validateLogLevel)
	if err != nil {
		return err
	}

	err = validate.RegisterValidation("filepath", validateFilePath)
	if err != nil {
		return err
	}

	return validate.Struct(c)
}

// overlay copies every non-empty field of src over c. TrustedSubnet is also
// copied when src set it to empty on purpose.
func (c *Config) overlay(src Config) {
	if src.RunAddr != "" {
		c.RunAddr = src.RunAddr
	}
	if src.APIBaseURL != "" {
		c.APIBaseURL = src.APIBaseURL
	}
	if src.LogLevel != "" {
		c.LogLevel = src.LogLevel
	}
	if src.SessionFilePath != "" {
		c.SessionFilePath = src.SessionFilePath
	}
	if src.TrustedSubnet != "" || src.trustedSubnetSet {
		c.TrustedSubnet = src.TrustedSubnet
	}
	if src.ConfigFile != "" {
		c.ConfigFile = src.ConfigFile
	}
}

func readJSONFile(fileName string) (Config, error) {
	var fromFile Config

	data, err := os.ReadFile(fileName)
	if err != nil {
		return fromFile, fmt.Errorf("reading config file %q: %w", fileName, err)
	}
	if err := json.Unmarshal(data, &fromFile); err != nil {
		return fromFile, fmt.Errorf("parsing config file %q: %w", fileName, err)
	}

	var present struct {
		TrustedSubnet *string `json:"trusted_subnet"`
	}
	if err := json.Unmarshal(data, &present); err != nil {
		return fromFile, fmt.Errorf("parsing config file %q: %w", fileName, err)
	}
	fromFile.trustedSubnetSet = present.TrustedSubnet != nil

	return fromFile, nil
}

func parseFlags(args []string) (Config, error) {
	var fromFlags Config

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.StringVar(&fromFlags.RunAddr, "a", "", "address and port to serve the views on")
	fs.StringVar(&fromFlags.APIBaseURL, "b", "", "base address of the trips REST API")
	fs.StringVar(&fromFlags.LogLevel, "l", "", "logger level")
	fs.StringVar(&fromFlags.SessionFilePath, "s", "", "JSON file holding the session token")
	fs.StringVar(&fromFlags.TrustedSubnet, "t", "", "CIDR allowed to reach the views (empty allows everyone)")
	fs.StringVar(&fromFlags.ConfigFile, "c", "", "JSON config file")

	if err := fs.Parse(args); err != nil {
		return fromFlags, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			fromFlags.trustedSubnetSet = true
		}
	})

	return fromFlags, nil
}

// InitOption customizes New.
type InitOption func(*initOptions)

type initOptions struct {
	disableFlagsParsing bool
	args                []string
}

// WithDisableFlagsParsing skips command-line flags entirely.
func WithDisableFlagsParsing(disableFlagsParsing bool) InitOption {
	return func(options *initOptions) {
		options.disableFlagsParsing = disableFlagsParsing
	}
}

// WithArgs parses the given arguments instead of os.Args[1:].
func WithArgs(args []string) InitOption {
	return func(options *initOptions) {
		options.args = args
	}
}

// New builds and validates the configuration.
func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{
		args: os.Args[1:],
	}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	err := godotenv.Load()
	if err != nil {
		log.Printf("Unable to load .env file: %v", err)
	}

	var fromFlags Config
	if !options.disableFlagsParsing {
		fromFlags, err = parseFlags(options.args)
		if err != nil {
			return nil, err
		}
	}

	var fromEnv Config
	if err := env.Parse(&fromEnv); err != nil {
		return nil, err
	}
	_, fromEnv.trustedSubnetSet = os.LookupEnv(trustedSubnetEnv)

	values := defaultConfig

	configFile := fromFlags.ConfigFile
	if fromEnv.ConfigFile != "" {
		configFile = fromEnv.ConfigFile
	}
	if configFile != "" {
		fromFile, err := readJSONFile(configFile)
		if err != nil {
			return nil, err
		}
		values.overlay(fromFile)
	}

	values.overlay(fromFlags)
	values.overlay(fromEnv)

	if err := values.validate(); err != nil {
		return nil, err
	}

	return &values, nil
}
