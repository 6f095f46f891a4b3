// Package domain turns MCP tool calls into catalog lookups and markdown
// reports.
//
// Search renders a short list of occupations with their SOC codes. Details
// fetches every profile section concurrently and assembles one document with
// a fixed layout; a section that failed upstream renders its own unavailable
// sentence without aborting the rest of the document.
package domain
