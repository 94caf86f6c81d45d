
// Package prompts contains MCP prompt implementations for jsoninfer.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	Draft             string
	RequiredThreshold float64
	Strategy          string
}
