package export

import (
	"fmt"
	"os"
	"path/filepath"

	"snpgen/internal/model"
)

type Family string

const (
	FamilyOneSpikeChain     Family = "one-spike-chain"
	FamilyAllSpikeChain     Family = "all-spike-chain"
	FamilySimpleComplete    Family = "simple-complete"
	FamilyBenchmarkComplete Family = "benchmark-complete"
)

var Families = []Family{FamilyOneSpikeChain, FamilyAllSpikeChain, FamilySimpleComplete, FamilyBenchmarkComplete}

// FilePrefix is the base file name used for fixtures of the family.
func (f Family) FilePrefix() string {
	switch f {
	case FamilyOneSpikeChain:
		return "one-chain"
	case FamilyAllSpikeChain:
		return "all-chain"
	default:
		return string(f)
	}
}

// Format names an on-disk encoding by its version directory.
type Format string

const (
	FormatTree Format = "v3"
	FormatFlat Format = "v2"
)

var Formats = []Format{FormatTree, FormatFlat}

func (f Format) Ext() string {
	switch f {
	case FormatTree:
		return "json"
	case FormatFlat:
		return "xmp"
	default:
		return ""
	}
}

func Encode(format Format, s *model.System) ([]byte, error) {
	switch format {
	case FormatTree:
		return EncodeTree(s)
	case FormatFlat:
		return EncodeFlat(s)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Layout maps fixtures to <root>/<family>/<version>/<prefix>_<count>.<ext>.
type Layout struct {
	Root string
}

func (l Layout) Dir(family Family, format Format) string {
	return filepath.Join(l.Root, string(family), string(format))
}

func (l Layout) Path(family Family, format Format, neurons int) string {
	name := fmt.Sprintf("%s_%d.%s", family.FilePrefix(), neurons, format.Ext())
	return filepath.Join(l.Dir(family, format), name)
}

// Prepare creates every family/version directory under the root.
func (l Layout) Prepare() error {
	for _, family := range Families {
		for _, format := range Formats {
			if err := os.MkdirAll(l.Dir(family, format), 0o755); err != nil {
				return err
			}
		}
	}
	return nil
}
