package main

import (
	"embed"
	"io/fs"
)

// The monitor page served at "/".
//
//go:embed all:frontend
var frontendFiles embed.FS

func getFrontendFS() fs.FS {
	sub, err := fs.Sub(frontendFiles, "frontend")
	if err != nil {
		panic(err)
	}
	return sub
}
