package update

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
)

// manifestLineRE matches one manifest entry: a 64-char lowercase hex digest,
// whitespace, an optional sha256sum binary-mode marker, and the asset
// filename. Lines that do not match (comments, blanks) are skipped.
var manifestLineRE = regexp.MustCompile(`^([0-9a-f]{64})\s+\*?(.+)$`)

// Manifest maps asset filenames to their expected SHA-256 digest.
type Manifest map[string]string

// ParseManifest reads a plain-text checksum manifest. A manifest that yields
// zero entries is treated as a fetch failure, not an empty success.
func ParseManifest(r io.Reader) (Manifest, error) {
	m := make(Manifest)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		match := manifestLineRE.FindStringSubmatch(scanner.Text())
		if match == nil {
			continue
		}
		m[match[2]] = match[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	if len(m) == 0 {
		return nil, ErrManifestEmpty
	}

	return m, nil
}

// LoadManifest parses the manifest file at path.
func LoadManifest(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	return ParseManifest(f)
}

// DigestFor returns the expected digest for the named asset. A missing entry
// is a hard failure: a binary without a manifest entry is never installed.
func (m Manifest) DigestFor(name string) (string, error) {
	digest, ok := m[name]
	if !ok {
		return "", fmt.Errorf("%w: no entry for %s", ErrManifestNotFound, name)
	}
	return digest, nil
}
