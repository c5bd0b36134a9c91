package userauth

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/joeshaw/envdecode"
	"golang.org/x/crypto/bcrypt"
)

// Config holds auth options. Values can be loaded from the environment with
// LoadConfig; defaults are provided via struct tags.
type Config struct {
	// Secret signs every token. ENV: AUTH_SECRET
	Secret string `env:"AUTH_SECRET,required"`
	// PasswordCost is the bcrypt work factor, zero means DefaultPasswordCost.
	// ENV: AUTH_PASSWORD_COST
	PasswordCost int `env:"AUTH_PASSWORD_COST,default=10"`

	BodyField  string `env:"AUTH_BODY_FIELD,default=authToken"`
	QueryParam string `env:"AUTH_QUERY_PARAM,default=authToken"`
	RouteParam string `env:"AUTH_ROUTE_PARAM,default=authToken"`
	Header     string `env:"AUTH_HEADER,default=authtoken"`
	Cookie     string `env:"AUTH_COOKIE,default=authToken"`
	// AuthSchemes accepted in the Authorization header, ";" separated.
	// ENV: AUTH_SCHEMES
	AuthSchemes []string `env:"AUTH_SCHEMES,default=Bearer;Bcrypt"`
	ContextKey  string   `env:"AUTH_CONTEXT_KEY,default=userId"`
}

// LoadConfig decodes Config from the environment and validates it. Values
// that do not parse are errors. AUTH_PASSWORD_COST has a default, so a zero
// cost can only be set explicitly and is rejected.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if err := validation.Validate(cfg.PasswordCost, validation.Required); err != nil {
		return Config{}, fmt.Errorf("%w: AUTH_PASSWORD_COST %w", ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate will validate the config
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Secret, validation.Required),
		validation.Field(&c.PasswordCost, validation.Min(bcrypt.MinCost), validation.Max(bcrypt.MaxCost)),
		validation.Field(&c.AuthSchemes, validation.By(noBlankSchemes)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return nil
}

// GateConfig returns the request lookup settings
func (c Config) GateConfig() GateConfig {
	return GateConfig{
		BodyField:   c.BodyField,
		QueryParam:  c.QueryParam,
		RouteParam:  c.RouteParam,
		Header:      c.Header,
		Cookie:      c.Cookie,
		AuthSchemes: c.AuthSchemes,
		ContextKey:  c.ContextKey,
	}
}

func noBlankSchemes(value any) error {
	schemes, _ := value.([]string)
	for _, scheme := range schemes {
		if strings.TrimSpace(scheme) == "" {
			return errors.New("must not contain blank schemes")
		}
	}
	return nil
}
