package runtime

import "github.com/dlclark/regexp2"

// Regex wraps regexp2's .NET-style engine rather than Go's RE2-based
// regexp, since Umbrella source patterns can use lookaround and
// backreferences the spec's Regex namespace exposes (spec.md §4.4)
// and RE2 cannot express.
type Regex struct {
	re *regexp2.Regexp
}

func NewRegex(pattern, flags string) (*Regex, error) {
	opts := regexp2.None
	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		}
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	return &Regex{re: re}, nil
}

func (r *Regex) Test(s string) bool {
	m, err := r.re.MatchString(s)
	return err == nil && m
}

func (r *Regex) Match(s string) (string, error) {
	m, err := r.re.FindStringMatch(s)
	if err != nil || m == nil {
		return "", err
	}
	return m.String(), nil
}

func (r *Regex) FindAll(s string) (*Sequence[string], error) {
	out := NewSequence[string]()
	m, err := r.re.FindStringMatch(s)
	for m != nil && err == nil {
		out.Push(m.String())
		m, err = r.re.FindNextMatch(m)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Replace substitutes every match of the pattern with replacement,
// mirroring JavaScript-style global regex replace rather than the
// first-occurrence semantics String::replace uses (spec.md §4.4).
func (r *Regex) Replace(s, replacement string) (string, error) {
	return r.re.Replace(s, replacement, -1, -1)
}
