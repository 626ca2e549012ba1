package env

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidEntry indicates an environment entry is not of the form KEY=VALUE.
var ErrInvalidEntry = errors.New("invalid environment entry")

// MapToSlice converts an env map into KEY=VALUE entries sorted by key.
func MapToSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// SliceToMap converts KEY=VALUE entries into a map, skipping malformed rows.
// Later entries override earlier ones.
func SliceToMap(envSlice []string) map[string]string {
	result := make(map[string]string, len(envSlice))
	for _, envVar := range envSlice {
		key, value, ok := strings.Cut(envVar, "=")
		if !ok {
			continue
		}
		result[key] = value
	}
	return result
}

// Lookup returns the value of the last entry for key.
func Lookup(envSlice []string, key string) (string, bool) {
	for i := len(envSlice) - 1; i >= 0; i-- {
		k, v, ok := strings.Cut(envSlice[i], "=")
		if ok && k == key {
			return v, true
		}
	}
	return "", false
}

// Set returns a copy of envSlice with key set to value. An existing entry is
// replaced in place; otherwise the entry is appended.
func Set(envSlice []string, key, value string) []string {
	result := slices.Clone(envSlice)
	entry := key + "=" + value
	for i, envVar := range result {
		if k, _, ok := strings.Cut(envVar, "="); ok && k == key {
			result[i] = entry
			return result
		}
	}
	return append(result, entry)
}

// Merge combines environment lists. Later lists override earlier ones.
// Malformed entries are dropped.
func Merge(lists ...[]string) []string {
	var result []string
	index := make(map[string]int)
	for _, list := range lists {
		for _, envVar := range list {
			key, _, ok := strings.Cut(envVar, "=")
			if !ok {
				continue
			}
			if i, seen := index[key]; seen {
				result[i] = envVar
				continue
			}
			index[key] = len(result)
			result = append(result, envVar)
		}
	}
	if result == nil {
		return []string{}
	}
	return result
}

// FilterByPrefixSlice returns KEY=VALUE pairs whose key has the given prefix.
// The prefix matching is case-insensitive. Malformed entries are skipped.
//
// Example:
//
//	env.FilterByPrefixSlice([]string{"LC_ALL=C", "HOME=/root"}, "lc_")
//	// Returns: ["LC_ALL=C"]
func FilterByPrefixSlice(envSlice []string, prefix string) []string {
	result := make([]string, 0)
	prefixUpper := strings.ToUpper(prefix)

	for _, envVar := range envSlice {
		key, _, ok := strings.Cut(envVar, "=")
		if !ok {
			continue
		}
		if strings.HasPrefix(strings.ToUpper(key), prefixUpper) {
			result = append(result, envVar)
		}
	}

	return result
}

// ValidateEntry checks that entry has a non-empty key, an '=' separator and
// no NUL bytes, which exec cannot represent.
func ValidateEntry(entry string) error {
	if strings.IndexByte(entry, 0) >= 0 {
		return fmt.Errorf("%w: contains NUL byte", ErrInvalidEntry)
	}
	key, _, ok := strings.Cut(entry, "=")
	if !ok {
		return fmt.Errorf("%w: %q has no '='", ErrInvalidEntry, entry)
	}
	if key == "" {
		return fmt.Errorf("%w: %q has an empty key", ErrInvalidEntry, entry)
	}
	return nil
}

// ValidateAll runs ValidateEntry on every entry and joins the failures.
func ValidateAll(envSlice []string) error {
	var errs []error
	for _, entry := range envSlice {
		if err := ValidateEntry(entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
