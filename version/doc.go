// Package version exposes build metadata set at compile time:
//
//	go build -ldflags "-X github.com/kbukum/audioviz/version.Version=1.2.0 \
//	    -X github.com/kbukum/audioviz/version.GitCommit=$(git rev-parse --short HEAD)"
package version
