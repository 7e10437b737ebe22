// Package presenter maps stored entities onto the JSON views returned by the HTTP API and printed by the CLI.
package presenter
