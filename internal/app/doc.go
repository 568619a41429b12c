// Package app contains the core application logic. It defines the main App
// struct, its configuration and the dispatch of commands and selections,
// decoupled from the entrypoints in cmd/.
package app
