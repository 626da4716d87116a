package schema

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

//go:embed schema.cue
var defaultSchemaCUE string

// LoadError describes a schema configuration failure.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes for schema loading.
const (
	ErrCodeNotFound    = "S001" // schema directory not found
	ErrCodeLoadFailed  = "S002" // CUE load failed
	ErrCodeBuildFailed = "S003" // CUE build failed
	ErrCodeInvalid     = "S004" // descriptor validation failed
)

// cueConfig mirrors the CUE document shape for decoding.
type cueConfig struct {
	Tables []Table `json:"tables"`
	Counts Counts  `json:"counts"`
}

// Default returns the embedded medical schema descriptor.
// The embedded config is part of the build, so a failure here is a
// programming error and panics.
func Default() *Descriptor {
	ctx := cuecontext.New()
	value := ctx.CompileString(defaultSchemaCUE, cue.Filename("schema.cue"))
	d, err := decodeDescriptor(value)
	if err != nil {
		panic(fmt.Sprintf("embedded schema.cue is invalid: %v", err))
	}
	return d
}

// LoadDir loads a schema descriptor from a directory of CUE files.
// All files in the directory are unified into one configuration, so the
// tables list and counts may be split across files.
func LoadDir(dir string) (*Descriptor, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("schema directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing schema directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir, Package: "*"})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	return decodeDescriptor(value)
}

// decodeDescriptor decodes and validates a CUE value into a Descriptor.
func decodeDescriptor(value cue.Value) (*Descriptor, error) {
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("invalid CUE value: %v", err)}
	}

	var cfg cueConfig
	if err := value.Decode(&cfg); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("decoding schema config: %v", err)}
	}
	if cfg.Counts.Patients < 0 || cfg.Counts.Doctors < 0 || cfg.Counts.Appointments < 0 ||
		cfg.Counts.Medications < 0 || cfg.Counts.Prescriptions < 0 {
		return nil, &LoadError{Code: ErrCodeInvalid, Message: "generator counts must be non-negative"}
	}

	d, err := NewDescriptor(cfg.Tables, cfg.Counts)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeInvalid, Message: err.Error()}
	}
	return d, nil
}
