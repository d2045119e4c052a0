package transform

import (
	"go-ml.dev/pkg/autonub/tables"
	"sort"
)

// Unknown is the default sentinel label standing for missing and unseen categories
const Unknown = "UNK"

/*
StringEncoder converts every non missing cell into string
*/
type StringEncoder struct {
	IsFitted bool
}

func (*StringEncoder) Name() string { return "stringencoder" }

func (s *StringEncoder) Fitted() bool { return s.IsFitted }

func (s *StringEncoder) Clone() Step { x := *s; return &x }

func (s *StringEncoder) Fit([]interface{}) error {
	s.IsFitted = true
	return nil
}

func (s *StringEncoder) Transform(cells []interface{}) ([]interface{}, error) {
	if !s.IsFitted {
		return nil, notFitted(s)
	}
	r := make([]interface{}, len(cells))
	for i, c := range cells {
		if !tables.Na(c) {
			r[i] = tables.String(c)
		}
	}
	return r, nil
}

/*
CategoricalImputer replaces missing cells by FillValue. If FillUnknown is set, labels
not seen in Fit are replaced too.
*/
type CategoricalImputer struct {
	FillValue   string
	FillUnknown bool
	Known       map[string]bool
	IsFitted    bool
}

func NewCategoricalImputer(fill string, fillUnknown bool) *CategoricalImputer {
	return &CategoricalImputer{FillValue: fill, FillUnknown: fillUnknown}
}

func (*CategoricalImputer) Name() string { return "categoricalimputer" }

func (s *CategoricalImputer) Fitted() bool { return s.IsFitted }

func (s *CategoricalImputer) Clone() Step {
	x := *s
	if s.Known != nil {
		x.Known = make(map[string]bool, len(s.Known))
		for k := range s.Known {
			x.Known[k] = true
		}
	}
	return &x
}

func (s *CategoricalImputer) Fit(cells []interface{}) error {
	s.Known = map[string]bool{}
	for _, c := range cells {
		if !tables.Na(c) {
			s.Known[tables.String(c)] = true
		}
	}
	s.IsFitted = true
	return nil
}

func (s *CategoricalImputer) Transform(cells []interface{}) ([]interface{}, error) {
	if !s.IsFitted {
		return nil, notFitted(s)
	}
	r := make([]interface{}, len(cells))
	for i, c := range cells {
		if tables.Na(c) {
			r[i] = s.FillValue
			continue
		}
		v := tables.String(c)
		if s.FillUnknown && !s.Known[v] {
			v = s.FillValue
		}
		r[i] = v
	}
	return r, nil
}

/*
LabelEncoder maps labels to integer ids. The vocabulary is the sorted set of observed
labels and the sentinel. Labels not seen in Fit are encoded as the sentinel.
*/
type LabelEncoder struct {
	Sentinel string
	Labels   []string
	IsFitted bool
}

func NewLabelEncoder(sentinel string) *LabelEncoder {
	return &LabelEncoder{Sentinel: sentinel}
}

func (*LabelEncoder) Name() string { return "labelencoder" }

func (s *LabelEncoder) Fitted() bool { return s.IsFitted }

func (s *LabelEncoder) Clone() Step {
	x := *s
	x.Labels = append([]string(nil), s.Labels...)
	return &x
}

func (s *LabelEncoder) Fit(cells []interface{}) error {
	set := map[string]bool{s.Sentinel: true}
	for _, c := range cells {
		if !tables.Na(c) {
			set[tables.String(c)] = true
		}
	}
	s.Labels = make([]string, 0, len(set))
	for k := range set {
		s.Labels = append(s.Labels, k)
	}
	sort.Strings(s.Labels)
	s.IsFitted = true
	return nil
}

// Classes returns the fitted vocabulary, the sentinel included
func (s *LabelEncoder) Classes() []string {
	return append([]string(nil), s.Labels...)
}

// Id returns the id of label, or the id of sentinel for unknown labels
func (s *LabelEncoder) Id(label string) int {
	if j := sort.SearchStrings(s.Labels, label); j < len(s.Labels) && s.Labels[j] == label {
		return j
	}
	return sort.SearchStrings(s.Labels, s.Sentinel)
}

func (s *LabelEncoder) Transform(cells []interface{}) ([]interface{}, error) {
	if !s.IsFitted {
		return nil, notFitted(s)
	}
	r := make([]interface{}, len(cells))
	for i, c := range cells {
		l := s.Sentinel
		if !tables.Na(c) {
			l = tables.String(c)
		}
		r[i] = float64(s.Id(l))
	}
	return r, nil
}

/*
Label returns the label for id, ids out of vocabulary range are decoded as the sentinel
*/
func (s *LabelEncoder) Label(id int) string {
	if id < 0 || id >= len(s.Labels) {
		return s.Sentinel
	}
	return s.Labels[id]
}

/*
InverseIds decodes ids back into labels
*/
func (s *LabelEncoder) InverseIds(ids []int) ([]string, error) {
	if !s.IsFitted {
		return nil, notFitted(s)
	}
	r := make([]string, len(ids))
	for i, id := range ids {
		r[i] = s.Label(id)
	}
	return r, nil
}
