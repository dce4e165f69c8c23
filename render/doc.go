// Package render loads and executes the page templates. Templates use the
// Django/Jinja syntax of pongo2 and are looked up first in an optional
// directory on disk, then in the templates embedded in the binary.
package render
