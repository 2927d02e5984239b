// Package dashboard provides the embedded web UI for TodoBoard.
//
// This package uses Go's embed directive to include the HTML templates at
// compile time, enabling single-binary deployment without external asset
// files. The templates are parsed once by [NewRenderer]; a broken template
// is reported at startup rather than on the first request.
//
// Users of the todoboard library should not need to interact with this
// package directly.
package dashboard

import "embed"

// Assets is an embedded filesystem containing the dashboard templates.
//
// The filesystem structure is:
//
//	assets/
//	  layout.html   - "page" template: the full document shell
//	  content.html  - "content" template: creation form and todo list
//
//go:embed assets/*
var Assets embed.FS
