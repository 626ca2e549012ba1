// Package env provides helpers for KEY=VALUE environment lists as handed to
// a child process.
//
// A child launched by package process receives exactly the entries it is
// given; nothing is inherited implicitly. The helpers here build those lists:
//
//   - Format conversion (MapToSlice, SliceToMap)
//   - Lookup and override (Lookup, Set, Merge)
//   - Filtering (FilterByPrefixSlice)
//   - Validation (ValidateEntry)
//   - Loading dotenv files (LoadFile, LoadFiles)
//
// # Building an Environment
//
//	base := env.FilterByPrefixSlice(os.Environ(), "LC_")
//	fromFile, err := env.LoadFile(".env")
//	if err != nil {
//		return err
//	}
//	envp := env.Merge(base, fromFile, []string{"MODE=batch"})
//	p := process.New("/usr/bin/worker", nil, envp)
//
// Later lists win when keys collide; the position of the first occurrence is
// kept so the order stays stable.
package env
