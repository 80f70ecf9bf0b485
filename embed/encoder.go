package embed

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// EncoderConfig points the encoder at the ONNX runtime, the exported model
// and its tokenizer. MaxSeqLen truncates long inputs; puzzle tokens are short
// so the default is generous.
type EncoderConfig struct {
	LibraryPath   string
	ModelPath     string
	TokenizerPath string
	MaxSeqLen     int
}

// Encoder runs a sentence-transformer ONNX model and mean-pools the last
// hidden state into a single L2-normalized vector per input.
type Encoder struct {
	tk      *tokenizer.Tokenizer
	session *ort.DynamicAdvancedSession
	maxLen  int
	mu      sync.Mutex
}

var (
	ortInitOnce sync.Once
	ortInitErr  error
)

func initRuntime(libraryPath string) error {
	ortInitOnce.Do(func() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

// NewEncoder loads the tokenizer and opens an inference session.
func NewEncoder(cfg EncoderConfig) (*Encoder, error) {
	if cfg.ModelPath == "" || cfg.TokenizerPath == "" {
		return nil, errors.New("embed: model and tokenizer paths are required")
	}
	if cfg.MaxSeqLen <= 0 {
		cfg.MaxSeqLen = 64
	}
	if err := initRuntime(cfg.LibraryPath); err != nil {
		return nil, fmt.Errorf("init onnx runtime: %w", err)
	}
	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}
	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{"input_ids", "attention_mask"},
		[]string{"last_hidden_state"}, nil)
	if err != nil {
		return nil, fmt.Errorf("open onnx session: %w", err)
	}
	return &Encoder{tk: tk, session: session, maxLen: cfg.MaxSeqLen}, nil
}

// Close releases the inference session. The encoder is unusable afterwards.
func (e *Encoder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		if err := e.session.Destroy(); err != nil {
			return err
		}
		e.session = nil
	}
	return nil
}

// Encode embeds one text. The session is not reentrant, so calls serialize.
func (e *Encoder) Encode(text string) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil, errors.New("embed: encoder is closed")
	}

	enc, err := e.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	ids := enc.Ids
	mask := enc.AttentionMask
	if len(ids) > e.maxLen {
		ids = ids[:e.maxLen]
		mask = mask[:e.maxLen]
	}
	if len(ids) == 0 {
		return nil, errors.New("embed: empty encoding")
	}

	seqLen := int64(len(ids))
	idsData := make([]int64, seqLen)
	maskData := make([]int64, seqLen)
	for i := range ids {
		idsData[i] = int64(ids[i])
		maskData[i] = int64(mask[i])
	}
	shape := ort.NewShape(1, seqLen)

	idsTensor, err := ort.NewTensor(shape, idsData)
	if err != nil {
		return nil, fmt.Errorf("input_ids tensor: %w", err)
	}
	defer idsTensor.Destroy()
	maskTensor, err := ort.NewTensor(shape, maskData)
	if err != nil {
		return nil, fmt.Errorf("attention_mask tensor: %w", err)
	}
	defer maskTensor.Destroy()

	outputs := []ort.Value{nil}
	if err := e.session.Run([]ort.Value{idsTensor, maskTensor}, outputs); err != nil {
		return nil, fmt.Errorf("run model: %w", err)
	}
	hidden, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		if outputs[0] != nil {
			outputs[0].Destroy()
		}
		return nil, errors.New("embed: unexpected output tensor type")
	}
	defer hidden.Destroy()

	dims := hidden.GetShape()
	if len(dims) != 3 {
		return nil, fmt.Errorf("embed: unexpected output rank %d", len(dims))
	}
	return meanPool(hidden.GetData(), int(dims[1]), int(dims[2]), maskData), nil
}

// meanPool averages token vectors weighted by the attention mask, then
// L2-normalizes the result.
func meanPool(hidden []float32, seqLen, dim int, mask []int64) []float32 {
	out := make([]float32, dim)
	var count float32
	for t := 0; t < seqLen && t < len(mask); t++ {
		if mask[t] == 0 {
			continue
		}
		row := hidden[t*dim : (t+1)*dim]
		for d, v := range row {
			out[d] += v
		}
		count++
	}
	if count > 0 {
		for d := range out {
			out[d] /= count
		}
	}
	normalize(out)
	return out
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(sum))
	for i := range vec {
		vec[i] *= inv
	}
}
