package fragments

import (
	"embed"
	"io/fs"
)

//go:embed static assets/main.css
var embeddedAssets embed.FS

// StaticFS exposes the files served under /static/.
//
// Typical mount:
//
//	router.PathPrefix("/static/").Handler(
//	  http.StripPrefix("/static/", http.FileServerFS(fragments.StaticFS())),
//	)
func StaticFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "static")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

// AssetsFS exposes the stylesheet served at /assets/main.css.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
