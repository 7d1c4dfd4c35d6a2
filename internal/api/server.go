package api

import (
	"context"
	"html/template"
	"time"

	"github.com/vytor/emojiabc/internal/services"
)

// Pinger reports whether the session store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	GameService  services.GameService
	DB           Pinger
	Templates    *template.Template
	StaticDir    string
	CookieSecure bool
	SessionTTL   time.Duration
}

type pageData map[string]any
