package ui

import "embed"

// Assets holds the templates, static files and page copy of the dashboard.
//
//go:embed templates/*.html templates/layout/*.html templates/fragments/*.html static/css/*.css content/*.md
var Assets embed.FS
