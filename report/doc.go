// Package report renders a filtered search result for the terminal.
//
// Output is one path per line for the kept results, a blank line, then up
// to two summary lines: one when the result cap hid matching files and one
// when files fell below the similarity threshold.
package report
