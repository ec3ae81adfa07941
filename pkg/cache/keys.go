package cache

// ArtifactKeyOpts describes everything besides the input bytes that
// determines a transformed image.
type ArtifactKeyOpts struct {
	// Transform is the canonical transform name, e.g. "invert".
	Transform string `json:"transform"`

	// Version changes whenever the serialized output format changes,
	// so older entries stop matching.
	Version int `json:"version"`
}

// ArtifactVersion is the current output format version.
const ArtifactVersion = 1

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for the output of transforming the input
	// identified by inputHash.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>" over the input hash and opts.
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	if opts.Version == 0 {
		opts.Version = ArtifactVersion
	}
	return hashKey("artifact", inputHash, opts)
}
