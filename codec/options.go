package codec

import (
	"fmt"

	"github.com/nwnkit/gff/format"
	"github.com/nwnkit/gff/internal/options"
)

// DefaultMaxDepth bounds struct nesting during decoding. Real game files
// stay far below this; the limit only exists to cap the explicit traversal
// stack on adversarial input.
const DefaultMaxDepth = 10000

// DecoderConfig holds decoder settings applied through functional options.
type DecoderConfig struct {
	fileTypes []string
	maxDepth  int
}

func newDecoderConfig() *DecoderConfig {
	return &DecoderConfig{maxDepth: DefaultMaxDepth}
}

// DecoderOption configures a Decoder.
type DecoderOption = options.Option[*DecoderConfig]

// WithFileTypes restricts the accepted file type tags. Without this option
// any printable ASCII tag is accepted, since the tag names the file
// category without changing the byte layout.
func WithFileTypes(tags ...string) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.fileTypes = tags
	})
}

// WithMaxDepth overrides the struct nesting limit.
func WithMaxDepth(depth int) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if depth <= 0 {
			return fmt.Errorf("max depth must be positive, got %d", depth)
		}
		c.maxDepth = depth

		return nil
	})
}

// EncoderConfig holds encoder settings applied through functional options.
type EncoderConfig struct {
	fileType string
}

func newEncoderConfig() *EncoderConfig {
	return &EncoderConfig{fileType: format.FileTypeGFF}
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithFileType sets the 4-byte file type tag written to the header. Shorter
// tags are space padded. The default is "GFF ".
func WithFileType(tag string) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if len(tag) > 4 {
			return fmt.Errorf("file type tag %q exceeds 4 bytes", tag)
		}
		c.fileType = tag

		return nil
	})
}
