package web

import "embed"

// templatesFS holds the embedded page and partial templates.
//
//go:embed templates/*.html
var templatesFS embed.FS

// StaticFS holds the embedded static assets.
//
//go:embed static/*
var StaticFS embed.FS
