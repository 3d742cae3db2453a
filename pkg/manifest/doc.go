// Package manifest reads conda package manifests and finds the packages that
// installed a given file.
//
// Every installed package leaves <prefix>/conda-meta/<package-id>.json
// behind. Only the "files" list of that document is read: it holds the
// package's installed paths relative to the environment root. A path listed
// by more than one manifest has been clobbered, so the scanner always reads
// every manifest and reports every claimant.
package manifest
