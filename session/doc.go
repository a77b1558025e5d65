// Package session runs the interactive menu of the circulation desk.
//
// The Controller reads operator input line by line, calls the record store and renders
// results and error conditions. Invalid integer input is re-prompted until a valid
// integer arrives; all other retries are operator driven.
package session
