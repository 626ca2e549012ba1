// Package pathutil resolves binary names to the absolute paths that exec
// requires.
//
// Exec does not search PATH, so a handle created with a bare name such as
// "echo" would fail to launch. ResolveBinary performs the lookup up front,
// optionally against the PATH value the child itself will receive:
//
//	envp := []string{"PATH=/opt/tools/bin:/usr/bin"}
//	path, err := pathutil.ResolveBinary("worker", "/opt/tools/bin:/usr/bin")
//	if err != nil {
//		return err
//	}
//	p := process.New(path, nil, envp)
package pathutil
