package config

import (
	"strings"

	"github.com/adampresley/configinator"
)

type Config struct {
	Host    string `flag:"host" env:"HOST" default:":8080" description:"The address and port to bind the HTTP server to"`
	AppName string `flag:"appname" env:"APP_NAME" default:"pet-care-portal" description:"Application name added to every log line"`

	LogLevel  string `flag:"loglevel" env:"LOG_LEVEL" default:"info" description:"Log level: debug, info, warn, error"`
	LogFormat string `flag:"logformat" env:"LOG_FORMAT" default:"text" description:"Log format: text or json"`

	DSN string `flag:"dsn" env:"DB_DSN" default:"" description:"Postgres DSN of the hosted database. Empty uses in-memory storage"`

	SupabaseURL     string `flag:"supabaseurl" env:"SUPABASE_URL" default:"" description:"Hosted backend project URL"`
	SupabaseAnonKey string `flag:"supabaseanonkey" env:"SUPABASE_ANON_KEY" default:"" description:"Hosted backend anonymous API key"`

	AdminUserIDs string `flag:"admins" env:"ADMIN_USER_IDS" default:"" description:"Comma separated user ids allowed on /admin routes"`

	StorageEndpoint        string `flag:"storageendpoint" env:"STORAGE_ENDPOINT" default:"" description:"S3 compatible storage endpoint. Empty uses in-memory storage"`
	StorageRegion          string `flag:"storageregion" env:"STORAGE_REGION" default:"eu-west-3" description:"Storage region"`
	StorageBucket          string `flag:"storagebucket" env:"STORAGE_BUCKET" default:"documents" description:"Bucket for documents and animal photos"`
	StorageAccessKeyID     string `flag:"storageaccesskeyid" env:"STORAGE_ACCESS_KEY_ID" default:"" description:"Storage access key id"`
	StorageSecretAccessKey string `flag:"storagesecretaccesskey" env:"STORAGE_SECRET_ACCESS_KEY" default:"" description:"Storage secret access key"`

	GoogleAPIKey          string `flag:"googleapikey" env:"GOOGLE_API_KEY" default:"" description:"Google Calendar API key (public calendars)"`
	GoogleCredentialsFile string `flag:"googlecredentials" env:"GOOGLE_CREDENTIALS_FILE" default:"" description:"Service account JSON used instead of the API key"`
	GoogleCalendars       string `flag:"googlecalendars" env:"GOOGLE_CALENDARS" default:"" description:"Agendas as id=name pairs separated by commas"`
	CalendarWorkers       int    `flag:"calendarworkers" env:"CALENDAR_WORKERS" default:"4" description:"Maximum agendas fetched concurrently"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}

// Admins devuelve la allow-list de administradores.
func (c Config) Admins() []string {
	return splitList(c.AdminUserIDs)
}

// Agenda es un calendario configurado.
type Agenda struct {
	ID   string
	Name string
}

// Agendas parsea GOOGLE_CALENDARS ("id=Nombre,id2=Nombre 2").
// Sin "=" el nombre es el propio id.
func (c Config) Agendas() []Agenda {
	out := make([]Agenda, 0)
	for _, item := range splitList(c.GoogleCalendars) {
		id, name, ok := strings.Cut(item, "=")
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			name = id
		}
		out = append(out, Agenda{ID: id, Name: name})
	}
	return out
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
