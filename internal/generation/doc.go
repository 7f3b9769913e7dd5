// Package generation provides interfaces and shared behavior for the external
// generative services the story pipeline orchestrates: story text (Gemini),
// page illustrations (DALL-E), and narration audio (Cloud TTS). It abstracts
// the provider details behind small interfaces and carries the retry policy
// applied around every upstream call.
package generation
