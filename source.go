package bylawkit

import (
	"io"
	"sync"

	eng "github.com/reoring/bylawkit/internal/engine"
	gojsonsrc "github.com/reoring/bylawkit/source/gojson"
	jsonsrc "github.com/reoring/bylawkit/source/json"
	yamlsrc "github.com/reoring/bylawkit/source/yaml"
)

// Source abstracts over input formats. Implementations yield a token stream
// over exactly one value.
type Source interface {
	NextToken() (eng.Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source. The default implementation
// is backed by goccy/go-json and may be swapped with SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = goJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the go-json driver.
func UseDefaultJSONDriver() { SetJSONDriver(goJSONDriver{}) }

// UseStdlibJSONDriver switches to the encoding/json driver, which reports
// byte offsets in decode errors.
func UseStdlibJSONDriver() { SetJSONDriver(StdlibJSONDriver()) }

// StdlibJSONDriver returns the encoding/json backed driver.
func StdlibJSONDriver() JSONDriver { return stdJSONDriver{} }

// CurrentJSONDriver reports the active driver.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	defer jsonDriverMu.RUnlock()
	return currentJSONDriver
}

type goJSONDriver struct{}

func (goJSONDriver) NewReader(r io.Reader) Source { return gojsonsrc.NewReader(r) }
func (goJSONDriver) NewBytes(b []byte) Source     { return gojsonsrc.NewBytes(b) }
func (goJSONDriver) Name() string                 { return "go-json" }

type stdJSONDriver struct{}

func (stdJSONDriver) NewReader(r io.Reader) Source { return jsonsrc.NewReader(r) }
func (stdJSONDriver) NewBytes(b []byte) Source     { return jsonsrc.NewBytes(b) }
func (stdJSONDriver) Name() string                 { return "encoding/json" }

// JSONReader wraps an io.Reader as a JSON Source. Input is read on the first
// token; DecodeFrom caps it at ParseOpt.MaxBytes.
func JSONReader(r io.Reader) Source {
	return &readerSource{r: r, open: CurrentJSONDriver().NewBytes}
}

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return CurrentJSONDriver().NewBytes(b) }

// YAMLReader wraps an io.Reader holding a single YAML document. Like
// JSONReader, input is capped at ParseOpt.MaxBytes under DecodeFrom.
func YAMLReader(r io.Reader) Source { return &readerSource{r: r, open: YAMLBytes} }

// YAMLBytes wraps a byte slice holding a single YAML document.
func YAMLBytes(b []byte) Source { return yamlsrc.NewBytes(b) }

type readerSource struct {
	r    io.Reader
	open func([]byte) Source
	max  int64
	src  Source
	err  error
}

func (s *readerSource) limitBytes(max int64) { s.max = max }

func (s *readerSource) NextToken() (eng.Token, error) {
	if s.src == nil && s.err == nil {
		b, err := ReadLimited(s.r, s.max)
		if err != nil {
			s.err = err
		} else {
			s.src = s.open(b)
		}
	}
	if s.err != nil {
		return eng.Token{}, s.err
	}
	return s.src.NextToken()
}

func (s *readerSource) Location() int64 {
	if s.src == nil {
		return -1
	}
	return s.src.Location()
}

// EnforceSource wraps a Source with duplicate key, depth and byte enforcement.
// Duplicate keys under Warn are passed to warn when it is non-nil.
func EnforceSource(s Source, opt ParseOpt, warn func(Issue)) Source {
	lim := eng.Limits{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
	}
	if warn != nil {
		lim.Warn = func(le eng.LimitError) {
			warn(Issue{Path: le.Path, Code: le.Code, Message: le.Message})
		}
	}
	return eng.Enforce(s, lim)
}

func toEngineDup(s Severity) eng.DupPolicy {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}
