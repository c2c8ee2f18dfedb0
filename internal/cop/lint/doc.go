// Package lint holds cops that point at likely bugs.
package lint
