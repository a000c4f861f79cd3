package app

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"clientdesk/internal/config"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Settings *config.Config     // loaded configuration
	HTTP     *http.Client       // optional; defaults to a client with Settings.API.Timeout
	Log      logrus.FieldLogger // optional; defaults to the standard logger
}
