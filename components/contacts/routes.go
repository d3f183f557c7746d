package contacts

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the contact routes under basePath and returns the
// registered paths. The item path accepts POST like the submit path; the id
// segment is ignored.
func (c *Component) RegisterRoutes(router *mux.Router, basePath string) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("contacts: missing component")
	}
	if router == nil {
		return nil, fmt.Errorf("contacts: missing router")
	}

	list := mountPath(basePath, c.opts.ListPath)
	submit := mountPath(basePath, c.opts.SubmitPath)
	item := mountPath(basePath, c.opts.ItemPath)

	router.HandleFunc(list, c.List).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc(submit, c.Create).Methods(http.MethodPost)
	router.HandleFunc(item, c.Create).Methods(http.MethodPost)
	router.HandleFunc(item, c.Delete).Methods(http.MethodDelete)
	return []string{list, submit, item}, nil
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
