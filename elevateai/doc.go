// Package elevateai implements the client for the ElevateAI interactions API.
// An audio interaction is declared, uploaded, polled for status, and finally
// read back as transcripts and AI results. All failures are classified into
// the application error taxonomy.
package elevateai
