package calendar

import "time"

// Calendar es una agenda configurada (GOOGLE_CALENDARS).
type Calendar struct {
	ID   string
	Name string
}

type Event struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	AllDay      bool      `json:"all_day"`
	HTMLLink    string    `json:"html_link,omitempty"`
}

// Agenda son los eventos de un calendario en el rango pedido.
type Agenda struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Events []Event `json:"events"`
}

type Range struct {
	From time.Time
	To   time.Time
}

// DefaultWindow es el rango cuando no se pide from/to.
const DefaultWindow = 30 * 24 * time.Hour
