// Package console is the line-based chat surface: a REPL that feeds each
// input line to a dialogue controller and a renderer that prints replies
// with colored confidence and severity labels.
package console
