// Package bootstrap personalizes a template repository for one owner,
// repository and optional custom domain.
//
// A run resolves the configuration, derives the public URLs, regenerates the
// served artifacts (download scripts, repo-url file, landing page), reconciles
// the README quick-install block and overwrites the state record. Reset undoes
// the README and state side of a run. Fetch and the environment helpers are
// the installer conveniences built on the same configuration.
package bootstrap
