package ggml

import "fmt"

// fileTypes is indexed by the ftype field of the hyperparameter block.
var fileTypes = [...]string{
	"ALL_F32",
	"MOSTLY_F16",
	"MOSTLY_Q4_0",
	"MOSTLY_Q4_1",
	"MOSTLY_Q4_1_SOME_F16",
	"MOSTLY_Q4_2",
	"MOSTLY_Q4_3",
	"MOSTLY_Q8_0",
	"MOSTLY_Q5_0",
	"MOSTLY_Q5_1",
	"MOSTLY_Q2_K",
	"MOSTLY_Q3_K_S",
	"MOSTLY_Q3_K_M",
	"MOSTLY_Q3_K_L",
	"MOSTLY_Q4_K_S",
	"MOSTLY_Q4_K_M",
	"MOSTLY_Q5_K_S",
	"MOSTLY_Q5_K_M",
	"MOSTLY_Q6_K",
}

// FileType is the storage/quantization tag of a model's tensor payloads.
type FileType int32

// NumFileTypes is the number of known file type tags.
const NumFileTypes = len(fileTypes)

// Name resolves the tag against the known table.
func (t FileType) Name() (string, error) {
	if t < 0 || int(t) >= len(fileTypes) {
		return "", fmt.Errorf("file type %d: %w", int32(t), ErrOutOfRange)
	}
	return fileTypes[t], nil
}

func (t FileType) String() string {
	name, err := t.Name()
	if err != nil {
		return fmt.Sprintf("ftype(%d)", int32(t))
	}
	return name
}
