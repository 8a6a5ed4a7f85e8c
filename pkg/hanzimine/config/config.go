package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/hanzimine/pkg/hanzimine/clean"
	"github.com/cognicore/hanzimine/pkg/hanzimine/cooccur"
	"github.com/cognicore/hanzimine/pkg/hanzimine/extract"
	"github.com/cognicore/hanzimine/pkg/hanzimine/internalerr"
	"github.com/cognicore/hanzimine/pkg/hanzimine/score"
)

// Config is a full run configuration
type Config struct {
	Clean   Clean   `yaml:"clean"`
	Extract Extract `yaml:"extract"`
	Segment Segment `yaml:"segment"`
	Cooccur Cooccur `yaml:"cooccur"`
}

// Clean configures the cleaning chain. Steps run in field order.
type Clean struct {
	Comments    string   `yaml:"comments"`
	Punctuation bool     `yaml:"punctuation"`
	Remove      []string `yaml:"remove"`
	MergeSpaces bool     `yaml:"merge_spaces"`
	MergeDicts  []string `yaml:"merge_dicts"`
	NFC         bool     `yaml:"nfc"`
}

// Extract configures token extraction
type Extract struct {
	MinFreq   int64  `yaml:"min_freq"`
	MinWindow int    `yaml:"min_window"`
	MaxWindow int    `yaml:"max_window"`
	Order     string `yaml:"order"`
}

// Segment configures segmentation. Method is a score field name for the
// score segmenter, "dict" or "gram".
type Segment struct {
	Method      string  `yaml:"method"`
	Cutoff      float64 `yaml:"cutoff"`
	MinWindow   int     `yaml:"min_window"`
	MaxWindow   int     `yaml:"max_window"`
	Dict        string  `yaml:"dict"`
	GramSize    int     `yaml:"gram_size"`
	Verbose     bool    `yaml:"verbose"`
	KeywordOnly bool    `yaml:"keyword_only"`
}

// Cooccur configures the co-occurrence quantifier
type Cooccur struct {
	Cutoff      int64   `yaml:"cutoff"`
	Method      string  `yaml:"method"`
	ScoreCutoff float64 `yaml:"score_cutoff"`
	Pairing     string  `yaml:"pairing"`
}

// Segmentation methods that do not use extraction scores
const (
	MethodDict = "dict"
	MethodGram = "gram"
)

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		Clean: Clean{
			Comments:    "#",
			Punctuation: true,
			MergeSpaces: true,
		},
		Extract: Extract{
			MinFreq:   extract.DefaultMinFreq,
			MinWindow: extract.DefaultMinWindow,
			MaxWindow: extract.DefaultMaxWindow,
			Order:     score.KindCohesion.String(),
		},
		Segment: Segment{
			Method:    score.KindCohesion.String(),
			MinWindow: extract.DefaultMinWindow,
			MaxWindow: extract.DefaultMaxWindow,
			GramSize:  2,
		},
		Cooccur: Cooccur{
			Cutoff:      cooccur.DefaultFreqCutoff,
			Method:      cooccur.MethodTScore.String(),
			ScoreCutoff: cooccur.DefaultScoreCutoff,
			Pairing:     cooccur.PairingFirstSeen.String(),
		},
	}
}

// Load reads a YAML config from path on top of DefaultConfig and validates it
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every name in the config resolves and every window
// is well formed.
func (c *Config) Validate() error {
	for _, name := range c.Clean.Remove {
		if _, err := clean.ParseCharClass(name); err != nil {
			return invalid("clean.remove", err)
		}
	}

	if c.Extract.MinFreq < 0 {
		return invalid("extract.min_freq", fmt.Errorf("%d is negative", c.Extract.MinFreq))
	}
	if c.Extract.MaxWindow < c.Extract.MinWindow {
		return invalid("extract", fmt.Errorf("max_window %d below min_window %d", c.Extract.MaxWindow, c.Extract.MinWindow))
	}
	if _, err := score.ParseKind(c.Extract.Order); err != nil {
		return invalid("extract.order", err)
	}

	switch c.Segment.Method {
	case MethodDict:
	case MethodGram:
		if c.Segment.GramSize < 1 {
			return invalid("segment.gram_size", fmt.Errorf("%d is below 1", c.Segment.GramSize))
		}
	default:
		if _, err := score.ParseKind(c.Segment.Method); err != nil {
			return invalid("segment.method", err)
		}
		if c.Segment.MaxWindow < c.Segment.MinWindow {
			return invalid("segment", fmt.Errorf("max_window %d below min_window %d", c.Segment.MaxWindow, c.Segment.MinWindow))
		}
	}

	if c.Cooccur.Cutoff < 0 {
		return invalid("cooccur.cutoff", fmt.Errorf("%d is negative", c.Cooccur.Cutoff))
	}
	if _, err := cooccur.ParseMethod(c.Cooccur.Method); err != nil {
		return invalid("cooccur.method", err)
	}
	if _, err := cooccur.ParsePairing(c.Cooccur.Pairing); err != nil {
		return invalid("cooccur.pairing", err)
	}
	return nil
}

func invalid(field string, err error) error {
	return fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidConfig, field, err)
}

// Loader returns a Loader for the dictionary files named in c
func (c *Config) Loader() *Loader {
	return &Loader{
		MergeDictPaths: c.Clean.MergeDicts,
		TokenDictPath:  c.Segment.Dict,
	}
}
