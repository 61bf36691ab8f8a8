// Package webui exposes the embedded console views and static assets.
// It lives at the module root so it can embed the sibling "web/" directory;
// internal/server imports it to render pages.
package webui

import "embed"

// FS is the embedded web directory tree:
// web/templates holds one layout plus one template per view,
// web/static holds the stylesheet served under /static.
//
//go:embed web
var FS embed.FS
