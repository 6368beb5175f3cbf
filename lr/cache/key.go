package cache

import (
	"fmt"
	"os"

	"github.com/npillmayer/lalr/lr"
)

// SourceKey returns a key function for grammars defined in file path. The
// key includes the modification time of the file, so that a changed grammar
// will not hit results for an older version of it. This is intended for
// development.
func SourceKey(path string) lr.KeyFunc {
	return func(g *lr.Grammar) (string, error) {
		fi, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("cannot compute cache key for grammar %s: %w", g.Name, err)
		}
		return fmt.Sprintf("%s_%d", g.Identity(), fi.ModTime().UnixNano()), nil
	}
}
