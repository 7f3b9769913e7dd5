// Package config handles loading, validation, and access to application
// configuration from environment variables and defaults. Settings are grouped
// by concern (server, llm, image, speech, generation) and validated before
// the application starts.
package config
