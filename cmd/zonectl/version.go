package main

const (
	version = "0.1.0-dev" // application version shown by the version command
	appName = "zonectl"
)
