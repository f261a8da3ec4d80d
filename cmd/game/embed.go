package main

import "embed"

// configFS holds the stock configuration used when -config is not given.
//
//go:embed configs
var configFS embed.FS
