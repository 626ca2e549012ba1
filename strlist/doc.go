// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package strlist provides an owned, growable list of strings used for the
// argument and environment vectors of a child process.
//
// A List distinguishes between two empty states:
//
//   - absent: the zero value, or a list that has been cleared
//   - present: a list that has been allocated, possibly with no elements
//
// Every appended string is cloned, so a List never shares storage with its
// callers. Growth reallocates the backing array to exactly fit the new
// length, mirroring the sentinel-terminated vectors handed to exec.
//
// # Example Usage
//
//	var argv strlist.List
//	argv.Append("/bin/echo")
//	argv.AppendAll("hello", "world")
//	fmt.Println(argv.Len())     // 3
//	fmt.Println(argv.Strings()) // [/bin/echo hello world]
//
//	argv.Clear()
//	fmt.Println(argv.IsAbsent()) // true
package strlist
