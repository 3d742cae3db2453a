// Package paths provides centralized path handling for conda-which.
//
// It covers two families of locations: conda-which's own XDG directories
// (config file, log file) and the well-known locations conda itself uses
// for its persisted state (environments.txt, condarc files, envs dirs).
// All values are computed once in New from the process environment; tests
// change them by setting environment variables before calling New.
package paths
