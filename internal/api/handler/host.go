package handler

import "github.com/labstack/echo/v4"

// requestHost is the ports.Host of a single HTTP request. Prompts are answered
// from the confirm query flag and UI effects are collected so they can be
// returned to the caller.
type requestHost struct {
	accept   bool
	prompt   string
	alerts   []string
	navigate string
	close    bool
}

func newRequestHost(c echo.Context) *requestHost {
	return &requestHost{accept: confirmed(c)}
}

func (h *requestHost) Confirm(prompt string) bool {
	h.prompt = prompt
	return h.accept
}

func (h *requestHost) Alert(message string) { h.alerts = append(h.alerts, message) }

func (h *requestHost) Navigate(link string) { h.navigate = link }

func (h *requestHost) Close() { h.close = true }

// hostEffects is the part of a response describing what the UI should do.
type hostEffects struct {
	Navigate string   `json:"navigate,omitempty"`
	Close    bool     `json:"close,omitempty"`
	Alerts   []string `json:"alerts,omitempty"`
}

func (h *requestHost) effects() hostEffects {
	return hostEffects{Navigate: h.navigate, Close: h.close, Alerts: h.alerts}
}
