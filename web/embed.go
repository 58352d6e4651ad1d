package web

import (
	"embed"
	"io/fs"
)

// FS contains the embedded static assets served under /static.
//
//go:embed static/*
var FS embed.FS

// Static returns the assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(FS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
