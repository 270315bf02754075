package adapters

import (
	"errors"
	"net/http"
	"strings"

	"github.com/toyz/compass/pkg/compass"
)

// EntryResponse is the JSON body returned for a back stack entry
type EntryResponse struct {
	ID        string         `json:"id"`
	Route     string         `json:"route"`
	Template  string         `json:"template"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// ErrorResponse is the JSON body returned when a deep link cannot be served
type ErrorResponse struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

func newEntryResponse(entry *compass.BackStackEntry) EntryResponse {
	resp := EntryResponse{
		ID:       entry.ID.String(),
		Route:    entry.Route,
		Template: entry.Template,
	}
	if entry.Arguments.Len() > 0 {
		resp.Arguments = make(map[string]any, entry.Arguments.Len())
		for _, key := range entry.Arguments.Keys() {
			resp.Arguments[key], _ = entry.Arguments.Raw(key)
		}
	}
	return resp
}

func errorResponse(status int, err error) (int, any) {
	return status, ErrorResponse{StatusCode: status, Message: err.Error()}
}

// routeFromRequest strips the mount prefix from an escaped request path and
// re-attaches the raw query, yielding a compass route string.
func routeFromRequest(prefix, escapedPath, rawQuery string) string {
	base := strings.TrimSuffix(prefix, "/") + "/"
	route := strings.TrimPrefix(escapedPath, base)
	if route == strings.TrimSuffix(base, "/") {
		route = ""
	}
	if rawQuery != "" && route != "" {
		route += "?" + rawQuery
	}
	return route
}

// serveDeepLink navigates to route, or reports the current entry when route
// is empty. It returns the status code and JSON body to write.
func serveDeepLink(c *compass.Controller, route string) (int, any) {
	if route == "" {
		entry := c.Current()
		if entry == nil {
			return errorResponse(http.StatusNotFound, errors.New("navigation has not started"))
		}
		return http.StatusOK, newEntryResponse(entry)
	}

	if err := c.Navigate(route); err != nil {
		var argErr *compass.ArgumentError
		switch {
		case errors.Is(err, compass.ErrRouteNotFound):
			return errorResponse(http.StatusNotFound, err)
		case errors.As(err, &argErr):
			return errorResponse(http.StatusBadRequest, err)
		default:
			return errorResponse(http.StatusInternalServerError, err)
		}
	}
	return http.StatusOK, newEntryResponse(c.Current())
}

// serveBack pops the back stack.
func serveBack(c *compass.Controller) (int, any) {
	if err := c.NavigateUp(); err != nil {
		if errors.Is(err, compass.ErrBackStackEmpty) {
			return errorResponse(http.StatusConflict, err)
		}
		return errorResponse(http.StatusInternalServerError, err)
	}
	return http.StatusOK, newEntryResponse(c.Current())
}
