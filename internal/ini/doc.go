// Package ini reads, edits and writes INI files without losing anything a
// person put in them.
//
// A File keeps two views of the same file: the raw lines, and a table of
// section -> key -> value. Reads go to the table. Every edit changes the
// table and makes the smallest matching change to the lines, so comments,
// blank lines and the order of keys and sections survive a Store.
//
// # Format
//
//	; comment
//	top=level            ; belongs to the unnamed section ""
//	[section]
//	key = value ; trailing comment
//	;disabled=entry
//
// Section names and keys are matched ignoring case; the first spelling seen
// is kept. Whitespace around keys and values is not significant. A ';' or
// '=' preceded by a backslash is literal.
//
// # Commenting
//
// CommentVariable turns "key=value" into ";key=value": the entry leaves the
// table but stays in the file. UncommentVariable reverses it, restoring the
// first commented line of the section whose key matches.
//
// A File is safe for concurrent use. Read-modify-write cycles across
// processes need external locking; see package inistore.
package ini
