// Package types holds the small interfaces shared between conda-which packages.
package types
