// Package procutil answers whether a process identifier refers to a live process.
//
// It wraps github.com/shirou/gopsutil/v4/process, which reads /proc on Linux,
// sysctl on macOS and the BSDs, and native APIs on Windows.
//
// A zombie (exited but not yet reaped) is reported as not running. This
// matters for callers that kill a child and reap it without blocking: the
// child is gone even though its table entry may linger for a moment.
//
// # Example Usage
//
//	if procutil.IsProcessRunning(pid) {
//	    fmt.Printf("Process %d is running\n", pid)
//	}
package procutil
