// Package gemini implements story text generation using Google's Gemini API.
// It builds a language-specific prompt from the child's profile and the story
// parameters, inflates the requested word count to compensate for the model
// undershooting, and retries failed calls with exponential backoff.
package gemini
