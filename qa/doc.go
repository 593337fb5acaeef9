// Package qa ties the interaction lifecycle and the rubric together: it
// runs one audio payload through remote processing and assembles the
// transcript, score and analytics into a single result. A result is only
// produced when the whole pipeline succeeded; partial results are never
// returned.
package qa
