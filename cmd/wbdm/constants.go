package main

// DefaultRepo is the repository used when --repo is not given.
const DefaultRepo = "default"

// Valid output formats for entity and diff documents.
var validFormats = []string{"json", "yaml"}

// Valid formats for diff output on the terminal.
var validDiffFormats = []string{"text", "json", "yaml"}
