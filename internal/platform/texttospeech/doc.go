// Package texttospeech implements narration synthesis using Google Cloud
// Text-to-Speech. Audio artifacts are mp3 files content-addressed by an md5
// hash of the text and voice, so repeated synthesis of the same page with the
// same voice is served from the local file cache instead of the API.
package texttospeech
