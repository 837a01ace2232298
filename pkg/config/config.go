package config

import (
	"time"

	"github.com/goliatone/go-dateinput/pkg/dateinput"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "DATEINPUT_"

type Config struct {
	Widget Widget `yaml:"widget" envPrefix:"WIDGET_"`
	Server Server `yaml:"server" envPrefix:"SERVER_"`
	Log    Log    `yaml:"log" envPrefix:"LOG_"`
}

// Widget mirrors dateinput.Options for file and environment based setup.
// Bounds are literal strings; linked and live bounds are wired in code.
type Widget struct {
	Name                string            `yaml:"name" env:"NAME" default:"Date"`
	ReadOnly            bool              `yaml:"read_only" env:"READ_ONLY"`
	DateOfBirth         bool              `yaml:"date_of_birth" env:"DATE_OF_BIRTH"`
	MinDate             string            `yaml:"min_date" env:"MIN_DATE" validate:"omitempty,datebound"`
	MaxDate             string            `yaml:"max_date" env:"MAX_DATE" validate:"omitempty,datebound"`
	MinDateErrorContent string            `yaml:"min_date_error_content" env:"MIN_DATE_ERROR_CONTENT" default:"Please enter a later date."`
	MaxDateErrorContent string            `yaml:"max_date_error_content" env:"MAX_DATE_ERROR_CONTENT" default:"Please enter an earlier date."`
	Messages            map[string]string `yaml:"messages" env:"MESSAGES" validate:"dive,keys,errorkind,endkeys,required"`
}

type Server struct {
	Addr         string        `yaml:"addr" env:"ADDR" default:":8080" validate:"required,hostname_port"`
	BasePath     string        `yaml:"base_path" env:"BASE_PATH" default:"/"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT" default:"5s" validate:"gte=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT" default:"10s" validate:"gte=0"`
}

type Log struct {
	Level string `yaml:"level" env:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
}

// Options converts the widget settings into dateinput options.
func (w Widget) Options() []dateinput.OptionFn {
	fns := []dateinput.OptionFn{
		dateinput.WithName(w.Name),
		dateinput.WithReadOnly(w.ReadOnly),
		dateinput.WithDateOfBirth(w.DateOfBirth),
		dateinput.WithMinDate(dateinput.Literal(w.MinDate)),
		dateinput.WithMaxDate(dateinput.Literal(w.MaxDate)),
		dateinput.WithMinDateErrorContent(w.MinDateErrorContent),
		dateinput.WithMaxDateErrorContent(w.MaxDateErrorContent),
	}
	if len(w.Messages) > 0 {
		messages := make(map[dateinput.Kind]string, len(w.Messages))
		for kind, message := range w.Messages {
			messages[dateinput.Kind(kind)] = message
		}
		fns = append(fns, dateinput.WithMessages(messages))
	}
	return fns
}
