package mcp

import "strings"

const (
	modelsURI     = "prism://models"
	historyPrefix = "prism://history/"
	reviewPrefix  = "prism://review/"
)

// resourceKind enumerates the URI schemes the adapter resolves.
type resourceKind int

const (
	resourceModels resourceKind = iota
	resourceHistory
	resourceReview
)

// resourceRef is a parsed resource URI.
type resourceRef struct {
	kind resourceKind
	// session is the session segment of a history URI; may be empty, in
	// which case the caller's session parameter applies.
	session string
	// reviewID is the id segment of a review URI.
	reviewID string
}

// uriMatchers is the ordered list of scheme matchers tried in sequence.
var uriMatchers = []func(uri string) (resourceRef, bool){
	func(uri string) (resourceRef, bool) {
		if uri == modelsURI {
			return resourceRef{kind: resourceModels}, true
		}
		return resourceRef{}, false
	},
	func(uri string) (resourceRef, bool) {
		if rest, ok := strings.CutPrefix(uri, historyPrefix); ok {
			return resourceRef{kind: resourceHistory, session: rest}, true
		}
		return resourceRef{}, false
	},
	func(uri string) (resourceRef, bool) {
		if rest, ok := strings.CutPrefix(uri, reviewPrefix); ok && rest != "" {
			return resourceRef{kind: resourceReview, reviewID: rest}, true
		}
		return resourceRef{}, false
	},
}

// parseResourceURI resolves a URI against the matcher list.
func parseResourceURI(uri string) (resourceRef, bool) {
	for _, match := range uriMatchers {
		if ref, ok := match(uri); ok {
			return ref, true
		}
	}
	return resourceRef{}, false
}
