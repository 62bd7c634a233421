// Package changelog loads release-notes category definitions.
//
// Categories come from the same document GitHub reads when it generates
// release notes (by default .github/release.yml):
//
//	changelog:
//	  exclude:
//	    labels: [skip-changelog]
//	  categories:
//	    - title: 🚀 Features
//	      labels: [enhancement]
//
// The document may live on disk or behind an http(s) URL. Load errors are
// returned to the caller; there is no built-in fallback category set.
package changelog
