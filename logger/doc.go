// Package logger provides structured logging backed by zerolog, with
// component tagging and a process-wide default logger.
package logger
