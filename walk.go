package datalib

import (
	"errors"
	"strings"
)

// ResolveAll walks config one level deep, replacing each string-valued field
// whose name is a known semantic key and whose value names an existing
// library file with the resolved item. Map-valued fields whose name contains
// one of extraKeys are walked recursively; extraKeys are not forwarded into
// the recursion. The record is mutated in place and returned.
//
// Strings that are not library references are left untouched. Substituted
// values are no longer strings, so running the pass again is a no-op. Decode
// and read failures abort the walk.
func (l *Library) ResolveAll(config map[string]any, extraKeys ...string) (map[string]any, error) {
	for key, val := range config {
		if nested, ok := val.(map[string]any); ok && containsAny(key, extraKeys) {
			resolved, err := l.ResolveAll(nested)
			if err != nil {
				return nil, err
			}

			config[key] = resolved

			continue
		}

		name, ok := val.(string)
		if !ok {
			continue
		}

		item, ok, err := l.tryResolve(key, name)
		if err != nil {
			return nil, err
		}

		if ok {
			config[key] = item
		}
	}

	return config, nil
}

// tryResolve resolves filename under key, reporting "no match" instead of an
// error when the key is not in the table or no file exists in either tier —
// the common case of a string field that is not a library reference. Decode
// and read failures are real errors and propagate.
func (l *Library) tryResolve(key, filename string) (any, bool, error) {
	item, err := l.resolve(key, filename, FormatDocument)

	var (
		unknownKey *UnknownKeyError
		notFound   *ItemNotFoundError
	)

	switch {
	case err == nil:
		return item, true, nil
	case errors.As(err, &unknownKey), errors.As(err, &notFound):
		return nil, false, nil
	default:
		return nil, false, err
	}
}

// containsAny reports whether any element of extraKeys occurs within
// fieldName. Matching is by substring, not equality, so an extra key also
// selects fields that merely contain it.
func containsAny(fieldName string, extraKeys []string) bool {
	for _, extra := range extraKeys {
		if strings.Contains(fieldName, extra) {
			return true
		}
	}

	return false
}
