package collection

import (
	"github.com/mitchellh/hashstructure/v2"
)

// Fingerprint returns a content hash of the collection covering everything that affects its
// serialized form, shelf order included. Two collections with the same fingerprint write
// byte-identical documents (ignoring the declared format version).
func (c *Collection) Fingerprint() (uint64, error) {
	return hashstructure.Hash(c, hashstructure.FormatV2, &hashstructure.HashOptions{
		ZeroNil: true,
	})
}
