package dataset

import (
	"embed"
	"io/fs"
)

//go:embed data
var bundled embed.FS

// Bundled returns the datasets compiled into the binary.
func Bundled() fs.FS {
	sub, err := fs.Sub(bundled, "data")
	if err != nil {
		// The data directory is part of the build; this cannot fail at runtime.
		panic(err)
	}
	return sub
}
