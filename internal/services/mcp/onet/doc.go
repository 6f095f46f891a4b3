// Package onet fetches occupation records from the O*NET Web Services catalog.
//
// Every call returns a Fragment. Transport failures, timeouts, non-2xx
// statuses and undecodable bodies are captured as Failure values so callers
// can degrade one section at a time instead of aborting a whole report.
package onet
