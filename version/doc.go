// Package version reports build version information.
//
//	go build -ldflags "-X github.com/kbukum/stripefdw/version.Version=1.0.0"
package version
