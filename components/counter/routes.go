package counter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the counter routes under basePath and returns the
// registered paths.
func (c *Component) RegisterRoutes(router *mux.Router, basePath string) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("counter: missing component")
	}
	if router == nil {
		return nil, fmt.Errorf("counter: missing router")
	}

	read := mountPath(basePath, c.opts.ReadPath)
	increment := mountPath(basePath, c.opts.IncrementPath)

	router.HandleFunc(read, c.Get).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc(increment, c.Increment).Methods(http.MethodPost)
	return []string{read, increment}, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/") + routePath
}
