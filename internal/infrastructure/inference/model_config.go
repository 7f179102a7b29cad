package inference

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// seq2seqModelTypes are the encoder-decoder architectures the runtime can summarize with.
var seq2seqModelTypes = map[string]bool{
	"t5":              true,
	"mt5":             true,
	"longt5":          true,
	"bart":            true,
	"mbart":           true,
	"pegasus":         true,
	"led":             true,
	"bigbird_pegasus": true,
}

// ModelConfig is the subset of a pretrained model's config.json the service reads.
type ModelConfig struct {
	ModelType             string   `json:"model_type"`
	Architectures         []string `json:"architectures"`
	VocabSize             int      `json:"vocab_size"`
	NumLayers             int      `json:"num_layers"`
	NumDecoderLayers      int      `json:"num_decoder_layers"`
	DModel                int      `json:"d_model"`
	MaxPositionEmbeddings int      `json:"max_position_embeddings"`
}

// ReadModelConfig parses config.json from a model directory.
func ReadModelConfig(dir string) (*ModelConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		return nil, fmt.Errorf("reading config.json: %w", err)
	}

	var cfg ModelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config.json: %w", err)
	}
	return &cfg, nil
}

// LogFields adds the architecture summary to a log event.
func (c *ModelConfig) LogFields(e *zerolog.Event) *zerolog.Event {
	return e.
		Strs("architectures", c.Architectures).
		Int("vocab_size", c.VocabSize).
		Int("d_model", c.DModel).
		Int("encoder_layers", c.NumLayers).
		Int("decoder_layers", c.NumDecoderLayers).
		Int("max_position_embeddings", c.MaxPositionEmbeddings)
}

// IsSeq2Seq reports whether the model type is an encoder-decoder text model.
func (c *ModelConfig) IsSeq2Seq() bool {
	return seq2seqModelTypes[c.ModelType]
}
