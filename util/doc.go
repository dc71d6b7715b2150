// Package util provides string sanitization shared by option and
// environment parsing.
package util
