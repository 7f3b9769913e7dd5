// Package openai implements story illustration generation using OpenAI's
// DALL-E 3 API. Each page of a story gets one image built from the page text,
// the child's appearance, and the story parameters, with retries on failure.
package openai
