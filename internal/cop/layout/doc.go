// Package layout holds whitespace and line-shape cops.
package layout
