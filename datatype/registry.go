package datatype

import (
	"go-ml.dev/pkg/autonub/schema"
	"go-ml.dev/pkg/zorros"
	"golang.org/x/xerrors"
	"sort"
)

/*
NewPassthrough creates handler of variables fed to network as is, they must be numerical
*/
func NewPassthrough() Handler {
	return inputOnly{schema.Passthrough}
}

/*
Registry maps datatype names to handlers
*/
type Registry struct {
	handlers map[string]Handler
}

/*
NewRegistry creates registry of handlers, every handler is validated by Check
*/
func NewRegistry(handlers ...Handler) (*Registry, error) {
	r := &Registry{map[string]Handler{}}
	for _, h := range handlers {
		if err := r.Register(h); err != nil {
			return nil, err
		}
	}
	return r, nil
}

/*
Default creates registry of all known datatypes. Params are datatype hyper-parameters by datatype name.
*/
func Default(params map[string]Params) *Registry {
	r, err := NewRegistry(
		NewNumerical(),
		NewCategorical(params[schema.Categorical]),
		NewBoolean(),
		NewDatetime(),
		NewText(params[schema.Text]),
		NewTimeSeries(params[schema.TimeSeries]),
		NewPassthrough())
	if err != nil {
		panic(zorros.Panic(err))
	}
	return r
}

/*
Register adds or replaces the handler of datatype
*/
func (r *Registry) Register(h Handler) error {
	if err := Check(h); err != nil {
		return err
	}
	r.handlers[h.Name()] = h
	return nil
}

/*
Lookup returns handler of datatype
*/
func (r *Registry) Lookup(name string) (Handler, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, xerrors.Errorf("unknown datatype `%v`: %w", name, ErrConfiguration)
	}
	return h, nil
}

// Names returns sorted names of registered datatypes
func (r *Registry) Names() []string {
	n := make([]string, 0, len(r.handlers))
	for k := range r.handlers {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

/*
Check validates the handler: it must have a name, return independent default pipelines
and support output exactly when it claims so
*/
func Check(h Handler) error {
	if h == nil {
		return xerrors.Errorf("handler is nil: %w", ErrConfiguration)
	}
	if h.Name() == "" {
		return xerrors.Errorf("handler %T has empty name: %w", h, ErrConfiguration)
	}
	p1, p2 := h.DefaultPipeline(), h.DefaultPipeline()
	if p1 == nil || p2 == nil {
		return xerrors.Errorf("datatype %v does not have default pipeline: %w", h.Name(), ErrConfiguration)
	}
	if p1.Fitted() {
		return xerrors.Errorf("datatype %v returns fitted default pipeline: %w", h.Name(), ErrConfiguration)
	}
	for i, s := range p1.Steps {
		if i >= len(p2.Steps) || s == p2.Steps[i] {
			return xerrors.Errorf("datatype %v shares default pipeline steps: %w", h.Name(), ErrConfiguration)
		}
	}
	_, err := h.SuggestedLoss()
	if h.SupportsOutput() == xerrors.Is(err, ErrNoOutput) {
		return xerrors.Errorf("datatype %v output support is inconsistent: %w", h.Name(), ErrConfiguration)
	}
	return nil
}
