package site

import (
	"embed"
	"io/fs"
)

//go:embed views/*.html
var viewFiles embed.FS

//go:embed assets
var assetFiles embed.FS

// Views returns the embedded page templates.
func Views() fs.FS {
	sub, err := fs.Sub(viewFiles, "views")
	if err != nil {
		panic(err)
	}
	return sub
}

// Assets returns the embedded static files served under /assets.
func Assets() fs.FS {
	sub, err := fs.Sub(assetFiles, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
